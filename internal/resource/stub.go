package resource

import (
	"fire/internal/namespace"
	"fire/internal/source"
)

// Stub records that a declaration with this path and kind exists.
// Bodies and signatures are not part of it: they are parsed only after the
// table is complete, so forward references across files resolve.
type Stub struct {
	Path    namespace.Path `json:"path" yaml:"path" msgpack:"path"`
	Kind    Kind           `json:"kind" yaml:"kind" msgpack:"kind"`
	File    string         `json:"file" yaml:"file" msgpack:"file"`
	Pos     source.LineCol `json:"pos" yaml:"pos" msgpack:"pos"`
	Span    source.Span    `json:"-" yaml:"-" msgpack:"-"`
	Private bool           `json:"private,omitempty" yaml:"private,omitempty" msgpack:"private"`
}
