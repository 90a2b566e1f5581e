// Package models contains GORM persistence models. Each model maps one
// domain entity to its table and carries the conversion both ways, so the
// domain packages stay free of persistence tags.
package models
