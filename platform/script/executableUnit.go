package script

import (
	"fmt"
	"log/slog"
	"time"

	engineTypes "github.com/robbyt/go-toolscript/engines/types"
	"github.com/robbyt/go-toolscript/internal/helpers"
	"github.com/robbyt/go-toolscript/platform/data"
	"github.com/robbyt/go-toolscript/platform/script/loader"
)

const checksumLength = 12

// ExecutableUnit represents a specific version of a script: its compiled
// content, the loader and compiler that produced it, and the data provider
// used to supply runtime bindings during evaluation.
type ExecutableUnit struct {
	// ID is a unique identifier for this unit, by default derived from a
	// checksum of the script content.
	ID string

	// CreatedAt records when this executable unit was instantiated.
	CreatedAt time.Time

	// ScriptLoader loads the script content into memory from various
	// sources (file, string, HTTP, etc).
	ScriptLoader loader.Loader

	// Compiler is the engine-specific compiler used to validate this unit.
	Compiler Compiler

	// Content holds the compiled and source representation of the script.
	Content ExecutableContent

	// DataProvider supplies the initial variable bindings for each
	// evaluation, enabling the "compile once, run many times" design.
	DataProvider data.Provider

	logHandler slog.Handler
	logger     *slog.Logger
}

// NewExecutableUnit loads the script from the provided loader, compiles it,
// and wraps the result. When versionID is empty, an ID is derived from the
// SHA-256 checksum of the compiled source.
func NewExecutableUnit(
	handler slog.Handler,
	versionID string,
	scriptLoader loader.Loader,
	compiler Compiler,
	dataProvider data.Provider,
) (*ExecutableUnit, error) {
	handler, logger := helpers.SetupLogger(handler, "script", "ExecutableUnit")

	if compiler == nil {
		return nil, ErrCompilerNil
	}
	if scriptLoader == nil {
		return nil, ErrLoaderNil
	}

	reader, err := scriptLoader.GetReader()
	if err != nil {
		return nil, fmt.Errorf("failed to get reader from loader: %w", err)
	}

	exe, err := compiler.Compile(reader)
	if err != nil {
		return nil, fmt.Errorf("compiler failed: %w", err)
	}

	if versionID == "" {
		versionID = helpers.SHA256(exe.GetSource())
		if len(versionID) > checksumLength {
			versionID = versionID[:checksumLength]
		}
	}

	return &ExecutableUnit{
		ID:           versionID,
		CreatedAt:    time.Now(),
		ScriptLoader: scriptLoader,
		Compiler:     compiler,
		Content:      exe,
		DataProvider: dataProvider,
		logHandler:   handler,
		logger:       logger.With("ID", versionID),
	}, nil
}

func (exe *ExecutableUnit) String() string {
	return fmt.Sprintf("ExecutableUnit{ID: %s, CreatedAt: %s, Compiler: %s, Loader: %s}",
		exe.ID, exe.CreatedAt, exe.Compiler, exe.ScriptLoader)
}

// GetID returns the unique identifier for this script version.
func (exe *ExecutableUnit) GetID() string {
	return exe.ID
}

// GetContent returns the validated and compiled script content.
func (exe *ExecutableUnit) GetContent() ExecutableContent {
	return exe.Content
}

// GetCreatedAt returns the timestamp when the unit was created.
func (exe *ExecutableUnit) GetCreatedAt() time.Time {
	return exe.CreatedAt
}

// GetEngineType returns the engine this script is intended to run on.
func (exe *ExecutableUnit) GetEngineType() engineTypes.Type {
	return exe.Content.GetEngineType()
}

// GetCompiler returns the compiler used to validate the script.
func (exe *ExecutableUnit) GetCompiler() Compiler {
	return exe.Compiler
}

// GetLoader returns the loader used to load the script content.
func (exe *ExecutableUnit) GetLoader() loader.Loader {
	return exe.ScriptLoader
}

// GetDataProvider returns the provider that supplies runtime bindings.
func (exe *ExecutableUnit) GetDataProvider() data.Provider {
	return exe.DataProvider
}
