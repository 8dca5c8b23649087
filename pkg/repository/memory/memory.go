package memory

import (
	"github.com/mailcrest/mailcrest/pkg/domain/interfaces"
)

// Repository is an alias for Memory to match the pattern
type Repository = Memory

// Memory is the in-memory repository used for development and tests
type Memory struct {
	override  *overrideRepository
	selection *selectionRepository
}

var _ interfaces.Repository = &Memory{}

func New() *Memory {
	return &Memory{
		override:  newOverrideRepository(),
		selection: newSelectionRepository(),
	}
}

func (m *Memory) Override() interfaces.OverrideRepository {
	return m.override
}

func (m *Memory) Selection() interfaces.SelectionRepository {
	return m.selection
}

func (m *Memory) Close() error {
	return nil
}
