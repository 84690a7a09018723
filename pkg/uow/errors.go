package uow

import "errors"

var (
	ErrRepositoryNotRegistered     = errors.New("[uow] repository not registered")
	ErrRepositoryAlreadyRegistered = errors.New("[uow] repository already registered")
	ErrInvalidRepositoryType       = errors.New("[uow] invalid repository type")

	// ErrConflict транзакция не может быть зафиксирована из-за конкурентной записи. Операцию нужно повторить
	// целиком, начиная с чтения.
	ErrConflict = errors.New("[uow] transaction conflict")
	// ErrRetryExhausted исчерпан лимит повторов при конфликтах.
	ErrRetryExhausted = errors.New("[uow] retry budget exhausted")
)
