package domain

import (
	"strconv"
	"strings"
)

// ModuleSerializationVersion must be bumped whenever the on-disk module layout
// changes in a way that makes previously stored modules unreadable or, worse,
// readable with a different meaning. The value is used as a directory name and
// should stay easy to recognise for whoever cleans up old versions.
//
// Version history:
//   - v1: 16 byte header, 16 byte instruction records, CBOR export table.
const ModuleSerializationVersion = "v1"

const engineSeparator = "-engine"

// VersionTag identifies a family of binary compatible modules. Modules stored
// under different tags are never read interchangeably.
type VersionTag struct {
	// Format is the serialization version, see ModuleSerializationVersion.
	Format string
	// EngineBuildID identifies the engine build that produced the modules.
	EngineBuildID uint32
}

// NewVersionTag returns the tag for the current serialization version and the
// given engine build.
func NewVersionTag(engineBuildID uint32) VersionTag {
	return VersionTag{
		Format:        ModuleSerializationVersion,
		EngineBuildID: engineBuildID,
	}
}

// String renders the tag as a path segment, e.g. "v1-engine42".
func (v VersionTag) String() string {
	return v.Format + engineSeparator + strconv.FormatUint(uint64(v.EngineBuildID), 10)
}

// ParseVersionTag parses a directory name produced by VersionTag.String.
// It reports false for names that are not version tags.
func ParseVersionTag(s string) (VersionTag, bool) {
	format, build, ok := strings.Cut(s, engineSeparator)
	if !ok || len(format) < 2 || format[0] != 'v' {
		return VersionTag{}, false
	}
	if _, err := strconv.ParseUint(format[1:], 10, 32); err != nil {
		return VersionTag{}, false
	}
	id, err := strconv.ParseUint(build, 10, 32)
	if err != nil {
		return VersionTag{}, false
	}
	return VersionTag{Format: format, EngineBuildID: uint32(id)}, true
}
