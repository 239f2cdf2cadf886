package entity

// EntityState estado de los datos maestros: activos o archivados.
// Archivado es un borrado lógico: la fila se conserva porque documentos
// históricos o balances todavía la referencian.
type EntityState string

const (
	StateActive   EntityState = "ACTIVE"
	StateArchived EntityState = "ARCHIVED"
)
