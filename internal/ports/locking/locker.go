package locking

import "context"

// Locker entrega exclusión mutua por clave. unlock nunca es nil cuando err == nil.
type Locker interface {
	Lock(ctx context.Context, key string) (unlock func(), err error)
}

// AnimalKey es la clave que serializa la cola, el estado y el ledger de un animal.
func AnimalKey(animalID string) string {
	return "animal:" + animalID
}
