package utils

import gonanoid "github.com/matoous/go-nanoid/v2"

const (
	characters     = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"
	fileNameLength = 16
	tokenLength    = 32
)

// GenerateFileName gera um nome aleatório para arquivos enviados, preservando a extensão
func GenerateFileName(ext string) (string, error) {
	name, err := gonanoid.Generate(characters, fileNameLength)
	if err != nil {
		return "", err
	}

	if ext == "" {
		return name, nil
	}
	if ext[0] != '.' {
		ext = "." + ext
	}

	return name + ext, nil
}

// GenerateToken gera um token opaco para confirmações de uso único
func GenerateToken() (string, error) {
	return gonanoid.Generate(characters, tokenLength)
}
