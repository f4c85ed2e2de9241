package validation

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"unicode"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

var (
	alphaPtBR    = regexp.MustCompile(`^(?i)[A-ZÃÁÀÂÄÇÉÊËÍÏÕÓÔÖÚÜ]+$`)
	alphanumPtBR = regexp.MustCompile(`^(?i)[0-9A-ZÃÁÀÂÄÇÉÊËÍÏÕÓÔÖÚÜ]+$`)
)

// passwordSymbols is the symbol class a strong password must draw from.
const passwordSymbols = "-#!$@£%^&*()_+|~=`{}[]:\";'<>?,./\\ "

func init() {
	mustRegister("alpha_ptbr", func(fl validator.FieldLevel) bool {
		return alphaPtBR.MatchString(fl.Field().String())
	})
	mustRegister("alphanum_ptbr", func(fl validator.FieldLevel) bool {
		return alphanumPtBR.MatchString(fl.Field().String())
	})
	mustRegister("float", func(fl validator.FieldLevel) bool {
		_, err := strconv.ParseFloat(fl.Field().String(), 64)
		return err == nil
	})
	mustRegister("strong_password", func(fl validator.FieldLevel) bool {
		return strongPassword(fl.Field().String(), 6)
	})
}

func mustRegister(tag string, fn validator.Func) {
	if err := validate.RegisterValidation(tag, fn); err != nil {
		panic(err)
	}
}

// alphaTags maps a locale to the validator tags used by Alpha and
// Alphanumeric. Unknown locales fall back to the Unicode-wide tags.
var alphaTags = map[string][2]string{
	"pt-BR": {"alpha_ptbr", "alphanum_ptbr"},
}

func strongPassword(s string, minLen int) bool {
	var lower, upper, digit, symbol bool
	n := 0
	for _, r := range s {
		n++
		switch {
		case unicode.IsLower(r):
			lower = true
		case unicode.IsUpper(r):
			upper = true
		case unicode.IsDigit(r):
			digit = true
		case strings.ContainsRune(passwordSymbols, r):
			symbol = true
		}
	}
	return n >= minLen && lower && upper && digit && symbol
}

// toString mirrors how string validators see non-string JSON values.
func toString(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case json.Number:
		return t.String()
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case int:
		return strconv.Itoa(t)
	case int64:
		return strconv.FormatInt(t, 10)
	case bool:
		return strconv.FormatBool(t)
	default:
		return ""
	}
}

func varOK(value any, tag string) bool {
	return validate.Var(value, tag) == nil
}

// ── Validators ───────────────────────────────────────────────────────────────

// NotEmpty fails on a missing, null or zero-length value.
func (c *Chain) NotEmpty(msg string) *Chain {
	return c.addCheck(msg, func(v any) bool {
		switch t := v.(type) {
		case nil:
			return false
		case []any:
			return len(t) > 0
		case map[string]any:
			return len(t) > 0
		default:
			return toString(v) != ""
		}
	})
}

// Numeric accepts an optionally signed decimal number.
func (c *Chain) Numeric(msg string) *Chain {
	return c.addCheck(msg, func(v any) bool { return varOK(toString(v), "numeric") })
}

// Digits accepts unsigned decimal digits only.
func (c *Chain) Digits(msg string) *Chain {
	return c.addCheck(msg, func(v any) bool { return varOK(toString(v), "number") })
}

// Int accepts a whole number, optionally signed, that fits in an int64.
func (c *Chain) Int(msg string) *Chain {
	return c.addCheck(msg, func(v any) bool {
		_, err := strconv.ParseInt(toString(v), 10, 64)
		return err == nil
	})
}

// Length bounds the character count. A negative max leaves it unbounded.
func (c *Chain) Length(min, max int, msg string) *Chain {
	tag := fmt.Sprintf("min=%d", min)
	if max >= 0 {
		tag += fmt.Sprintf(",max=%d", max)
	}
	return c.addCheck(msg, func(v any) bool { return varOK(toString(v), tag) })
}

// Alpha accepts letters of locale; runes in ignore are stripped first.
func (c *Chain) Alpha(locale, ignore, msg string) *Chain {
	tag := "alphaunicode"
	if t, ok := alphaTags[locale]; ok {
		tag = t[0]
	}
	return c.addCheck(msg, func(v any) bool { return varOK(stripRunes(toString(v), ignore), tag) })
}

// Alphanumeric accepts letters of locale and digits; runes in ignore are
// stripped first.
func (c *Chain) Alphanumeric(locale, ignore, msg string) *Chain {
	tag := "alphanumunicode"
	if t, ok := alphaTags[locale]; ok {
		tag = t[1]
	}
	return c.addCheck(msg, func(v any) bool { return varOK(stripRunes(toString(v), ignore), tag) })
}

func stripRunes(s, ignore string) string {
	if ignore == "" {
		return s
	}
	return strings.Map(func(r rune) rune {
		if strings.ContainsRune(ignore, r) {
			return -1
		}
		return r
	}, s)
}

// Matches requires the value to match re.
func (c *Chain) Matches(re *regexp.Regexp, msg string) *Chain {
	return c.addCheck(msg, func(v any) bool { return re.MatchString(toString(v)) })
}

// Equals requires the exact string want.
func (c *Chain) Equals(want, msg string) *Chain {
	return c.addCheck(msg, func(v any) bool { return toString(v) == want })
}

// In requires membership in values.
func (c *Chain) In(values []string, msg string) *Chain {
	tag := "oneof=" + strings.Join(values, " ")
	return c.addCheck(msg, func(v any) bool { return varOK(toString(v), tag) })
}

func (c *Chain) Email(msg string) *Chain {
	return c.addCheck(msg, func(v any) bool { return varOK(toString(v), "email") })
}

func (c *Chain) Lowercase(msg string) *Chain {
	return c.addCheck(msg, func(v any) bool {
		s := toString(v)
		return s == "" || varOK(s, "lowercase")
	})
}

func (c *Chain) URL(msg string) *Chain {
	return c.addCheck(msg, func(v any) bool { return varOK(toString(v), "url") })
}

// Boolean accepts JSON booleans and their string forms.
func (c *Chain) Boolean(msg string) *Chain {
	return c.addCheck(msg, func(v any) bool {
		if b, ok := v.(bool); ok {
			return varOK(b, "boolean")
		}
		return varOK(toString(v), "boolean")
	})
}

func (c *Chain) IsArray(msg string) *Chain {
	return c.addCheck(msg, func(v any) bool {
		_, ok := v.([]any)
		return ok
	})
}

func (c *Chain) Float(msg string) *Chain {
	return c.addCheck(msg, func(v any) bool { return varOK(toString(v), "float") })
}

// StrongPassword requires at least minLen runes with a lowercase letter, an
// uppercase letter, a digit and a symbol.
func (c *Chain) StrongPassword(minLen int, msg string) *Chain {
	return c.addCheck(msg, func(v any) bool { return strongPassword(toString(v), minLen) })
}

// ── Sanitizers ───────────────────────────────────────────────────────────────

// Trim strips surrounding whitespace from string values.
func (c *Chain) Trim() *Chain {
	return c.addSanitizer(func(v any) any {
		if s, ok := v.(string); ok {
			return strings.TrimSpace(s)
		}
		return v
	})
}

// Default substitutes def for a missing, null or empty-string value.
func (c *Chain) Default(def any) *Chain {
	return c.addSanitizer(func(v any) any {
		if v == nil {
			return def
		}
		if s, ok := v.(string); ok && s == "" {
			return def
		}
		return v
	})
}

// ToInt converts whole numbers to int64. Decimals and out of range values
// are left untouched for the validators to report.
func (c *Chain) ToInt() *Chain {
	return c.addSanitizer(func(v any) any {
		if n, err := strconv.ParseInt(toString(v), 10, 64); err == nil {
			return n
		}
		return v
	})
}

// ToBoolean converts the string forms accepted by Boolean to bool.
func (c *Chain) ToBoolean() *Chain {
	return c.addSanitizer(func(v any) any {
		if s, ok := v.(string); ok {
			if b, err := strconv.ParseBool(s); err == nil {
				return b
			}
		}
		return v
	})
}

// ToFloat converts numeric values to float64.
func (c *Chain) ToFloat() *Chain {
	return c.addSanitizer(func(v any) any {
		if f, err := strconv.ParseFloat(toString(v), 64); err == nil {
			return f
		}
		return v
	})
}
