package classifier

import (
	"regexp"
	"strconv"
	"strings"
	"unicode"

	"empleos/services/processing/internal/models"
)

var (
	salaryRangePattern  = regexp.MustCompile(`\$?([\d.]+)[KM]?-\$?([\d.]+)[KM]?`)
	salarySMMLVPattern  = regexp.MustCompile(`(\d+)SMMLV`)
	salarySinglePattern = regexp.MustCompile(`\$?([\d.]+)[KM]?`)
)

// ClassifySalary reads a salary range out of text such as "$3.000.000 - $4.500.000",
// "2 SMMLV" or "$2.5M". minimumWage prices the SMMLV unit.
//
// K and M scale a number when they appear anywhere in the normalized text,
// not only next to the number.
func ClassifySalary(text string, minimumWage float64) (salaryMin, salaryMax *float64, period models.SalaryPeriod) {
	s := normalizeSalaryText(text)
	if s == "" {
		return nil, nil, models.PeriodNone
	}

	if m := salaryRangePattern.FindStringSubmatch(s); m != nil {
		lo, okLo := scaleSalary(m[1], s)
		hi, okHi := scaleSalary(m[2], s)
		if okLo && okHi {
			return &lo, &hi, models.PeriodMonthly
		}
	}

	if m := salarySMMLVPattern.FindStringSubmatch(s); m != nil {
		n, err := strconv.Atoi(m[1])
		if err == nil {
			v := float64(n) * minimumWage
			return &v, models.Float(v), models.PeriodMonthly
		}
	}

	for _, m := range salarySinglePattern.FindAllStringSubmatch(s, -1) {
		v, ok := scaleSalary(m[1], s)
		if ok {
			return &v, models.Float(v), models.PeriodMonthly
		}
	}

	return nil, nil, models.PeriodNone
}

// normalizeSalaryText uppercases text, drops whitespace and thousands separators,
// and turns a decimal comma into a dot.
func normalizeSalaryText(text string) string {
	upper := strings.ToUpper(text)
	runes := make([]rune, 0, len(upper))
	for _, r := range upper {
		if unicode.IsSpace(r) {
			continue
		}
		runes = append(runes, r)
	}

	var b strings.Builder
	for i, r := range runes {
		if r != '.' && r != ',' {
			b.WriteRune(r)
			continue
		}
		if isThousandsSeparator(runes, i) {
			continue
		}
		if i > 0 && unicode.IsDigit(runes[i-1]) && i+1 < len(runes) && unicode.IsDigit(runes[i+1]) {
			b.WriteRune('.')
		}
	}
	return b.String()
}

// isThousandsSeparator reports whether the separator at i sits between a digit
// and exactly three digits.
func isThousandsSeparator(runes []rune, i int) bool {
	if i == 0 || !unicode.IsDigit(runes[i-1]) {
		return false
	}
	digits := 0
	for j := i + 1; j < len(runes) && unicode.IsDigit(runes[j]); j++ {
		digits++
	}
	return digits == 3
}

func scaleSalary(value, context string) (float64, bool) {
	num, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0, false
	}
	if strings.Contains(context, "K") {
		num *= 1000
	} else if strings.Contains(context, "M") {
		num *= 1000000
	}
	return num, true
}
