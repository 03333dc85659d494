package diskspace

import (
	"context"

	"github.com/GriffinCanCode/drivy/backend/internal/domain/diskspace"
	"github.com/GriffinCanCode/drivy/backend/internal/shared/types"
)

const (
	DefaultChannel = "disk_space"

	MethodGetTotalDiskSpace = "getTotalDiskSpace"
	MethodGetFreeDiskSpace  = "getFreeDiskSpace"

	// CodeUnavailable is the error code sent when statistics cannot be read
	CodeUnavailable = "UNAVAILABLE"
)

// Provider reports data filesystem capacity in MiB
type Provider struct {
	name   string
	reader *diskspace.Reader
}

// New creates a disk space channel handler
func New(reader *diskspace.Reader, name string) *Provider {
	if name == "" {
		name = DefaultChannel
	}
	return &Provider{name: name, reader: reader}
}

// Definition returns channel metadata
func (p *Provider) Definition() types.Channel {
	return types.Channel{
		Name:        p.name,
		Description: "Capacity of the filesystem holding the application data directory",
		Category:    types.CategoryStorage,
		Methods: []types.Method{
			{
				Name:        MethodGetTotalDiskSpace,
				Description: "Total size in MiB",
				Parameters:  []types.Parameter{},
				Returns:     "number",
			},
			{
				Name:        MethodGetFreeDiskSpace,
				Description: "Space available to the application in MiB",
				Parameters:  []types.Parameter{},
				Returns:     "number",
			},
		},
	}
}

// Handle runs a disk space method
func (p *Provider) Handle(ctx context.Context, call types.MethodCall) *types.Result {
	var read func(context.Context) (float64, error)
	switch call.Method {
	case MethodGetTotalDiskSpace:
		read = p.reader.Total
	case MethodGetFreeDiskSpace:
		read = p.reader.Free
	default:
		return types.NotImplemented()
	}

	mb, err := read(ctx)
	if err != nil {
		return types.Failure(CodeUnavailable, err.Error(), map[string]interface{}{
			"path": p.reader.Path(),
		})
	}
	return types.Success(mb)
}
