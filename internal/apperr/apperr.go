// Package apperr определяет единую классификацию ошибок сервиса.
//
// Каждая ошибка бизнес-уровня несёт вид (Kind), по которому граница HTTP
// выбирает статус ответа, и опциональный машиночитаемый код для клиентов.
// Внутренние детали (текст ошибки БД и т.п.) наружу не выходят.
package apperr

import "errors"

// Kind вид ошибки, стабильный контракт между ядром и границей.
type Kind string

const (
	// KindUnauthenticated — токен отсутствует, невалиден, истёк
	// или пользователь больше не существует.
	KindUnauthenticated Kind = "unauthenticated"
	// KindForbidden — аутентифицирован, но роль или арендатор не подходят.
	KindForbidden Kind = "forbidden"
	// KindNotFound — ресурс отсутствует либо принадлежит чужому арендатору.
	KindNotFound Kind = "not_found"
	// KindValidation — некорректные входные данные.
	KindValidation Kind = "validation"
	// KindQuotaExceeded — достигнут лимит тарифного плана.
	KindQuotaExceeded Kind = "quota_exceeded"
	// KindInternal — неожиданная ошибка хранилища или подписи.
	KindInternal Kind = "internal"
)

// Error ошибка с видом, машиночитаемым кодом и сообщением для клиента.
type Error struct {
	Kind Kind   // Вид ошибки
	Code string // Машиночитаемый код (опционально)
	Msg  string // Сообщение, безопасное для выдачи клиенту
	Err  error  // Обёрнутая причина (наружу не выходит)
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Msg + ": " + e.Err.Error()
	}
	return e.Msg
}

func (e *Error) Unwrap() error { return e.Err }

// New создаёт ошибку с заданным видом и сообщением.
func New(kind Kind, msg string) *Error {
	return &Error{Kind: kind, Msg: msg}
}

// Wrap оборачивает причину в ошибку с заданным видом и сообщением.
func Wrap(kind Kind, msg string, err error) *Error {
	return &Error{Kind: kind, Msg: msg, Err: err}
}

// KindOf возвращает вид ошибки. Всё, что не классифицировано явно,
// считается внутренней ошибкой.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindInternal
}

// CodeOf возвращает машиночитаемый код ошибки или пустую строку.
func CodeOf(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}

// MessageOf возвращает сообщение, безопасное для клиента.
// Для внутренних ошибок всегда отдаётся общий текст.
func MessageOf(err error) string {
	var e *Error
	if errors.As(err, &e) && e.Kind != KindInternal {
		return e.Msg
	}
	return "internal server error"
}

// Предопределённые ошибки границ сервиса.
var (
	// ErrUnauthenticated единый ответ на любую проблему с токеном.
	ErrUnauthenticated = New(KindUnauthenticated, "authentication required")
	// ErrInvalidCredentials единый ответ на неверные учётные данные:
	// "нет такого пользователя" и "неверный пароль" неразличимы.
	ErrInvalidCredentials = New(KindUnauthenticated, "invalid credentials")
	// ErrForbidden недостаточно прав для операции.
	ErrForbidden = New(KindForbidden, "insufficient permissions")
	// ErrNoteNotFound заметка отсутствует или принадлежит чужому арендатору.
	ErrNoteNotFound = New(KindNotFound, "note not found")
	// ErrQuotaExceeded лимит заметок бесплатного плана исчерпан.
	ErrQuotaExceeded = &Error{
		Kind: KindQuotaExceeded,
		Code: "NOTE_LIMIT_REACHED",
		Msg:  "note limit reached, upgrade to pro for unlimited notes",
	}
)
