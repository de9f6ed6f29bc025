package repository

import "errors"

// ErrNotFound is returned when a lookup matches no row. Services translate
// it into their own not-found errors so pgx never leaks above this layer.
var ErrNotFound = errors.New("not found")

// ErrSeatsExist is returned when seat provisioning hits a flight that
// already has an inventory. The seat set is created exactly once.
var ErrSeatsExist = errors.New("seats already provisioned")
