package utils

import (
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

func GetUUID() string {
	return uuid.New().String()
}

func ParseFloat(s string) float64 {
	val, _ := strconv.ParseFloat(strings.TrimSpace(s), 64)
	return val
}

func ParseInt(s string) int {
	val, _ := strconv.Atoi(strings.TrimSpace(s))
	return val
}

func ParseDate(s string) *time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return nil
	}
	return &t
}

// FormatUSD renders an amount for display, e.g. 240 -> "$240.00".
func FormatUSD(amount float64) string {
	return "$" + strconv.FormatFloat(amount, 'f', 2, 64)
}
