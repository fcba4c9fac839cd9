// Package registrar provides ports.Registrar adapters over external
// registration collaborators. The arbitration core never runs a
// registration itself; these adapters only surface results the collaborators
// have already produced.
package registrar

import (
	"context"
	"fmt"

	"github.com/ahrav/go-xformgate/infrastructure/xfm"
	"github.com/ahrav/go-xformgate/internal/domain"
	"github.com/ahrav/go-xformgate/internal/ports"
)

// FileRegistrar surfaces a registration candidate from files an upstream
// tool has written: a plain-text 4x4 transform matrix and an opaque
// diagnostic report artifact. This is the usual integration point for
// pipeline engines that execute the registration tools as separate
// processes.
//
// FileRegistrar is immutable after construction and safe for concurrent use.
type FileRegistrar struct {
	method     string
	dof        int
	matrixPath string
	reportPath string
}

var _ ports.Registrar = (*FileRegistrar)(nil)

// NewFileRegistrar creates a FileRegistrar for the named registration
// method. The DOF value (6, 9, or 12) labels the candidate and is never
// consumed by the arbitration math.
func NewFileRegistrar(method string, dof int, matrixPath, reportPath string) (*FileRegistrar, error) {
	if method == "" {
		return nil, fmt.Errorf("registration method cannot be empty")
	}
	switch dof {
	case 6, 9, 12:
	default:
		return nil, fmt.Errorf("unsupported degrees of freedom: %d", dof)
	}
	if matrixPath == "" || reportPath == "" {
		return nil, fmt.Errorf("matrix and report paths are required")
	}

	return &FileRegistrar{
		method:     method,
		dof:        dof,
		matrixPath: matrixPath,
		reportPath: reportPath,
	}, nil
}

// Name returns the registration method label.
func (r *FileRegistrar) Name() string { return r.method }

// Register loads the transform matrix and pairs it with the report
// reference. The report itself is never opened; it is passed through to the
// selection result untouched.
func (r *FileRegistrar) Register(ctx context.Context) (domain.Candidate, error) {
	if err := ctx.Err(); err != nil {
		return domain.Candidate{}, err
	}

	transform, err := xfm.Load(r.matrixPath)
	if err != nil {
		return domain.Candidate{}, fmt.Errorf("registrar %s: %w", r.method, err)
	}

	return domain.Candidate{
		Method:    r.method,
		DOF:       r.dof,
		Transform: transform,
		Report:    r.reportPath,
	}, nil
}
