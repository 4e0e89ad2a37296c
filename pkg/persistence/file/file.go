// Package file provides a file-backed persistence implementation for local
// development and tests.
package file

import (
	"context"
	"os"
	"strings"
	"sync"

	"github.com/dealclarity/clarity/pkg/persistence"
)

// Persistence implements persistence.Persistence on top of a directory of
// JSON documents. A single mutex serializes read-modify-write cycles, which
// stands in for the atomic updates the SQL store provides.
type Persistence struct {
	root string
	mu   sync.Mutex

	workflowRepo *WorkflowRepository
	dealRepo     *DealRepository
	taskRepo     *TaskRepository
}

// NewPersistence creates a file persistence rooted at the given directory.
func NewPersistence(root string) *Persistence {
	cleanRoot := strings.Replace(root, "file://", "", 1)

	p := &Persistence{root: cleanRoot}
	p.workflowRepo = &WorkflowRepository{store: p}
	p.dealRepo = &DealRepository{store: p}
	p.taskRepo = &TaskRepository{store: p}

	return p
}

func (p *Persistence) Workflows() persistence.WorkflowRepository {
	return p.workflowRepo
}

func (p *Persistence) Deals() persistence.DealRepository {
	return p.dealRepo
}

func (p *Persistence) Tasks() persistence.TaskRepository {
	return p.taskRepo
}

// HealthCheck verifies the root directory exists.
func (p *Persistence) HealthCheck(_ context.Context) error {
	if _, err := os.Stat(p.root); os.IsNotExist(err) {
		return os.ErrNotExist
	}

	return nil
}

// Close performs any necessary cleanup. For file persistence there is none.
func (p *Persistence) Close(_ context.Context) error {
	return nil
}
