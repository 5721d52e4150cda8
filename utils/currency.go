package utils

import (
	"fmt"
	"strings"
)

// FormatCurrency formats an amount with dot thousand separators and a
// comma decimal part, the way order subtotals are shown on receipts.
func FormatCurrency(amount float64) string {
	formatted := fmt.Sprintf("%.2f", amount)

	parts := strings.Split(formatted, ".")
	integerPart := parts[0]
	decimalPart := parts[1]

	var result []string
	for i := len(integerPart); i > 0; i -= 3 {
		start := i - 3
		if start < 0 {
			start = 0
		}
		result = append([]string{integerPart[start:i]}, result...)
	}

	return strings.Join(result, ".") + "," + decimalPart
}
