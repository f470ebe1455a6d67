package utils

import (
	"strings"
	"time"

	"github.com/pkg/errors"
)

// ParseDate tenta cada layout em ordem e retorna a primeira data válida
func ParseDate(dateStr string, layouts []string) (time.Time, error) {
	dateStr = strings.TrimSpace(dateStr)
	if dateStr == "" {
		return time.Time{}, errors.New("data vazia")
	}

	for _, layout := range layouts {
		date, err := time.Parse(layout, dateStr)
		if err == nil {
			return date, nil
		}
	}

	return time.Time{}, errors.Errorf("data %q não corresponde a nenhum formato conhecido", dateStr)
}
