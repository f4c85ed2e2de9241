// Package validation runs declarative, per-field rule chains over a decoded
// JSON document and reports every violation it finds.
//
// A Schema is an ordered list of chains. Each chain addresses one field path
// ("cnpj", "endereco.uf", "localizacao.coordinates.*") and holds an ordered
// list of steps. Sanitizer steps rewrite the field in the document, validator
// steps append a Violation when they fail. All chains run and all validators
// of a chain run; nothing short-circuits on the first failure.
package validation

import (
	"context"
	"fmt"
	"strings"
)

// Document is a JSON object decoded with json.Decoder.UseNumber.
type Document map[string]any

// Violation is one failed rule, tagged with the offending field.
type Violation struct {
	Value    any    `json:"value"`
	Msg      string `json:"msg"`
	Param    string `json:"param"`
	Location string `json:"location"`
}

// Errors is the ordered list of violations of a validation run. It implements
// error so services can return it alongside other failures.
type Errors []Violation

func (e Errors) Error() string {
	msgs := make([]string, len(e))
	for i, v := range e {
		msgs[i] = v.Param + ": " + v.Msg
	}
	return "validation failed: " + strings.Join(msgs, "; ")
}

// Has reports whether any violation targets param.
func (e Errors) Has(param string) bool {
	for _, v := range e {
		if v.Param == param {
			return true
		}
	}
	return false
}

// CustomFunc is an application-defined check, typically a store lookup. A
// non-empty msg is a violation; a non-nil err aborts the whole run.
type CustomFunc func(ctx context.Context, value any, doc Document) (msg string, err error)

type step struct {
	sanitize func(any) any
	check    func(ctx context.Context, value any, doc Document) (ok bool, msg string, err error)
}

// Chain is the rule list for a single field path.
type Chain struct {
	path     string
	optional bool
	nullable bool
	steps    []step
}

// Check starts a chain for path.
func Check(path string) *Chain {
	return &Chain{path: path}
}

// Optional skips the whole chain when the field is absent. With nullable the
// chain is also skipped for an explicit null.
func (c *Chain) Optional(nullable bool) *Chain {
	c.optional = true
	c.nullable = nullable
	return c
}

func (c *Chain) addSanitizer(fn func(any) any) *Chain {
	c.steps = append(c.steps, step{sanitize: fn})
	return c
}

func (c *Chain) addCheck(msg string, fn func(value any) bool) *Chain {
	c.steps = append(c.steps, step{check: func(_ context.Context, value any, _ Document) (bool, string, error) {
		return fn(value), msg, nil
	}})
	return c
}

// Custom appends an application-defined check.
func (c *Chain) Custom(fn CustomFunc) *Chain {
	c.steps = append(c.steps, step{check: func(ctx context.Context, value any, doc Document) (bool, string, error) {
		msg, err := fn(ctx, value, doc)
		if err != nil {
			return false, "", err
		}
		return msg == "", msg, nil
	}})
	return c
}

func (c *Chain) run(ctx context.Context, doc Document) (Errors, error) {
	var errs Errors
	for _, p := range expand(doc, c.path) {
		value, present := get(doc, p)
		if c.optional && (!present || (c.nullable && value == nil)) {
			continue
		}
		for _, s := range c.steps {
			if s.sanitize != nil {
				value = s.sanitize(value)
				if present || value != nil {
					set(doc, p, value)
					present = true
				}
				continue
			}
			ok, msg, err := s.check(ctx, value, doc)
			if err != nil {
				return nil, fmt.Errorf("validating %s: %w", p, err)
			}
			if !ok {
				errs = append(errs, Violation{Value: value, Msg: msg, Param: p, Location: "body"})
			}
		}
	}
	return errs, nil
}

// Schema is an ordered set of chains applied to one kind of document.
type Schema []*Chain

// Validate runs every chain against doc, sanitizing it in place. It returns
// the collected violations (nil when valid) or an error when a custom check
// could not complete.
func (s Schema) Validate(ctx context.Context, doc Document) (Errors, error) {
	var all Errors
	for _, c := range s {
		errs, err := c.run(ctx, doc)
		if err != nil {
			return nil, err
		}
		all = append(all, errs...)
	}
	return all, nil
}

// Check is Validate folded into a single error: nil when valid, Errors when
// any rule failed, or the underlying failure of a custom check.
func (s Schema) Check(ctx context.Context, doc Document) error {
	errs, err := s.Validate(ctx, doc)
	if err != nil {
		return err
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}
