package vanilla

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	rendertemplate "github.com/goliatone/go-hotelsite/pkg/render/template"
)

// siteFilters are the filters the bundled templates call. View data reaches
// templates as JSON, so whole numbers arrive as float64 and would otherwise
// print with a fractional part.
var siteFilters = map[string]rendertemplate.Filter{
	"int":   filterInt,
	"money": filterMoney,
}

func filterInt(in any, _ any) (any, error) {
	n, ok := wholeNumber(in)
	if !ok {
		return in, nil
	}
	return strconv.FormatInt(n, 10), nil
}

// filterMoney prints a whole amount behind a currency symbol, "$" unless the
// template passes one.
func filterMoney(in any, param any) (any, error) {
	symbol := "$"
	if s := strings.TrimSpace(fmt.Sprint(param)); param != nil && s != "" {
		symbol = s
	}
	n, ok := wholeNumber(in)
	if !ok {
		return "", nil
	}
	return symbol + strconv.FormatInt(n, 10), nil
}

func wholeNumber(in any) (int64, bool) {
	switch v := in.(type) {
	case int:
		return int64(v), true
	case int64:
		return v, true
	case float64:
		return int64(math.Round(v)), true
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return 0, false
		}
		return int64(math.Round(f)), true
	default:
		return 0, false
	}
}

func registerFilters(renderer rendertemplate.TemplateRenderer) error {
	for name, fn := range siteFilters {
		if err := renderer.RegisterFilter(name, fn); err != nil && !errors.Is(err, rendertemplate.ErrFilterExists) {
			return fmt.Errorf("register filter %q: %w", name, err)
		}
	}
	return nil
}
