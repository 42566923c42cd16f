package ports

//go:generate go run go.uber.org/mock/mockgen -source=program_finder.go -destination=mocks/mock_program_finder.go -package=mocks

// ProgramFinder expands command line paths into program source files.
type ProgramFinder interface {
	// FindPrograms replaces every directory in paths with the program files
	// found below it. Other paths are kept as given.
	FindPrograms(paths []string) ([]string, error)
}
