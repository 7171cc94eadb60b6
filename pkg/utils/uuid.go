package utils

import gonanoid "github.com/matoous/go-nanoid/v2"

const characters = "abcdefghijklmnopqrstuvwxyz0123456789"

// GenerateID gera o identificador curto de uma execução, usado em logs e nomes de arquivo
func GenerateID() (string, error) {
	return gonanoid.Generate(characters, 10)
}
