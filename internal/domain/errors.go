package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound           = errors.New("recurso no encontrado")
	ErrUserNotFound       = errors.New("usuario no encontrado")
	ErrEmailAlreadyExists = errors.New("el email ya está registrado")
	ErrInvalidInput       = errors.New("entrada inválida")
	ErrDuplicate          = errors.New("recurso duplicado")
	ErrUnauthorized       = errors.New("no autorizado")
	ErrForbidden          = errors.New("acceso denegado")
	ErrInvalidState       = errors.New("la solicitud no está en el estado requerido")
	ErrInsufficientStock  = errors.New("stock insuficiente")
	ErrNoDifference       = errors.New("el conteo físico no difiere del saldo del sistema")
	ErrInactive           = errors.New("el recurso está inactivo")
)
