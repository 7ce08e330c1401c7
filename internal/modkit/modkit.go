package modkit

import (
	"pbl/internal/modkit/module"
)

// Module is the contract every API service module implements
type Module = module.Module

// Builder constructs a Module from shared deps and options
type Builder func(Deps, ...Option) Module
