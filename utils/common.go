package utils

// NODETOL is the absolute tolerance for two node positions to coincide
const (
	NODETOL = 1.e-12
)
