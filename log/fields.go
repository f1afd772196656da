package log

import "go.uber.org/zap"

var (
	Skip        = zap.Skip
	Binary      = zap.Binary
	Bool        = zap.Bool
	Boolp       = zap.Boolp
	ByteString  = zap.ByteString
	Float64     = zap.Float64
	Float64s    = zap.Float64s
	Float32     = zap.Float32
	Int         = zap.Int
	Ints        = zap.Ints
	Int64       = zap.Int64
	Uint        = zap.Uint
	Uint32      = zap.Uint32
	String      = zap.String
	Strings     = zap.Strings
	Stringer    = zap.Stringer
	Time        = zap.Time
	Duration    = zap.Duration
	Any         = zap.Any
	Namespace   = zap.Namespace
	Reflect     = zap.Reflect
	Stack       = zap.Stack
	ErrorField  = zap.Error
	NamedError  = zap.NamedError
	Inline      = zap.Inline
	ObjectField = zap.Object
)
