package service

import (
	"errors"

	"prestadores-api/internal/validation"
)

var (
	ErrIDInvalido             = errors.New("o id informado é inválido")
	ErrPrestadorNaoEncontrado = errors.New("prestador não encontrado")
	ErrEmailNaoCadastrado     = errors.New("email não cadastrado")
	ErrSenhaIncorreta         = errors.New("senha incorreta")
)

// FieldError is a business rejection tied to a single request field. Reason
// is one of the sentinel errors above and drives the response status.
type FieldError struct {
	Reason    error
	Violation validation.Violation
}

func (e *FieldError) Error() string { return e.Violation.Msg }

func (e *FieldError) Unwrap() error { return e.Reason }

func fieldError(reason error, param string, value any, msg string) *FieldError {
	return &FieldError{
		Reason:    reason,
		Violation: validation.Violation{Value: value, Msg: msg, Param: param, Location: "body"},
	}
}
