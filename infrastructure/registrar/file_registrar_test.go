package registrar

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ahrav/go-xformgate/infrastructure/xfm"
	"github.com/ahrav/go-xformgate/internal/domain"
)

func writeMatrix(t *testing.T, transform domain.Affine) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "transform.mat")
	require.NoError(t, xfm.Write(path, transform))
	return path
}

func TestNewFileRegistrar_Validation(t *testing.T) {
	tests := []struct {
		name       string
		method     string
		dof        int
		matrixPath string
		reportPath string
		wantErr    string
	}{
		{
			name:       "valid",
			method:     "bbr",
			dof:        6,
			matrixPath: "m.mat",
			reportPath: "report.svg",
		},
		{
			name:       "empty method",
			dof:        6,
			matrixPath: "m.mat",
			reportPath: "report.svg",
			wantErr:    "method cannot be empty",
		},
		{
			name:       "unsupported dof",
			method:     "bbr",
			dof:        7,
			matrixPath: "m.mat",
			reportPath: "report.svg",
			wantErr:    "unsupported degrees of freedom",
		},
		{
			name:       "missing matrix path",
			method:     "bbr",
			dof:        6,
			reportPath: "report.svg",
			wantErr:    "paths are required",
		},
		{
			name:       "missing report path",
			method:     "bbr",
			dof:        6,
			matrixPath: "m.mat",
			wantErr:    "paths are required",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, err := NewFileRegistrar(tt.method, tt.dof, tt.matrixPath, tt.reportPath)
			if tt.wantErr == "" {
				require.NoError(t, err)
				assert.Equal(t, tt.method, r.Name())
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestFileRegistrar_Register(t *testing.T) {
	transform := domain.IdentityAffine()
	transform[2][3] = 6
	matrixPath := writeMatrix(t, transform)

	r, err := NewFileRegistrar("bbr", 9, matrixPath, "report.svg")
	require.NoError(t, err)

	candidate, err := r.Register(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "bbr", candidate.Method)
	assert.Equal(t, 9, candidate.DOF)
	assert.Equal(t, transform, candidate.Transform)
	assert.Equal(t, "report.svg", candidate.Report,
		"the report reference is opaque and passes through untouched")
}

func TestFileRegistrar_Register_MissingMatrix(t *testing.T) {
	r, err := NewFileRegistrar("bbr", 6, filepath.Join(t.TempDir(), "absent.mat"), "report.svg")
	require.NoError(t, err)

	_, err = r.Register(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "registrar bbr")
}

func TestFileRegistrar_Register_MalformedMatrix(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.mat")
	require.NoError(t, os.WriteFile(path, []byte("1 2 3\n"), 0o644))

	r, err := NewFileRegistrar("bbr", 6, path, "report.svg")
	require.NoError(t, err)

	_, err = r.Register(context.Background())
	require.Error(t, err)
}

func TestFileRegistrar_Register_CanceledContext(t *testing.T) {
	matrixPath := writeMatrix(t, domain.IdentityAffine())
	r, err := NewFileRegistrar("bbr", 6, matrixPath, "report.svg")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err = r.Register(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}
