package services

import "errors"

var (
	ErrEmailTaken         = errors.New("el correo electrónico ya está registrado")
	ErrInvalidCredentials = errors.New("credenciales inválidas")
	ErrTechnicianNotFound = errors.New("técnico no encontrado")
	ErrProfileNotFound    = errors.New("perfil de técnico no encontrado")
	ErrNotOwner           = errors.New("acceso denegado: no eres el propietario de este perfil de técnico")
	ErrCategoryNotFound   = errors.New("categoría no encontrada")
	ErrEmptyUpdate        = errors.New("no hay campos para actualizar")
)
