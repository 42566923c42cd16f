package domain

// TrustedDir is a cache directory whose contents the caller vouches for.
//
// Modules loaded from a TrustedDir are reconstructed directly from their
// on-disk memory layout without semantic validation. Bytes placed there by
// anyone other than a compatible engine can make the loaded module misbehave
// in ways that ordinary decoding errors would never allow. Never point a
// TrustedDir at a path that untrusted parties can write to.
type TrustedDir struct {
	path string
}

// AssumeTrustedDir marks path as trusted. The caller asserts that the
// directory is either empty or only ever written by a compatible engine.
func AssumeTrustedDir(path string) TrustedDir {
	return TrustedDir{path: path}
}

// Path returns the underlying filesystem path.
func (d TrustedDir) Path() string {
	return d.path
}

// TrustedArtifact holds serialized module bytes read from a TrustedDir.
// Decoders may alias and reinterpret the bytes in place.
type TrustedArtifact struct {
	data []byte
}

// AssumeTrustedArtifact marks data as a trusted artifact. The caller gives up
// ownership of data; it must not be modified afterwards.
func AssumeTrustedArtifact(data []byte) TrustedArtifact {
	return TrustedArtifact{data: data}
}

// Bytes returns the raw artifact bytes.
func (a TrustedArtifact) Bytes() []byte {
	return a.data
}
