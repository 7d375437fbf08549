package directory

import (
	"context"

	"go.uber.org/zap"

	"github.com/symtons/leavedesk/internal/shared/backend"
)

// Employee and Department are the supporting lookups behind the approval
// view's filter controls.
type Employee struct {
	EmployeeID     string `json:"employeeId"`
	FullName       string `json:"fullName"`
	Classification string `json:"classification"`
}

type Department struct {
	DepartmentID string `json:"departmentId"`
	Name         string `json:"name"`
}

//go:generate mockgen -source=directory_service.go -destination=mock/directory_service_mock.go -package=mock
type Client interface {
	Employees(ctx context.Context) ([]Employee, error)
	Departments(ctx context.Context) ([]Department, error)
}

type client struct {
	api *backend.Client
}

func NewClient(api *backend.Client) Client {
	return &client{api: api}
}

func (c *client) Employees(ctx context.Context) ([]Employee, error) {
	var out []Employee
	if err := c.api.Get(ctx, "/Employee/All", &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *client) Departments(ctx context.Context) ([]Department, error) {
	var out []Department
	if err := c.api.Get(ctx, "/Department/All", &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Lookups is everything the filters need, possibly partially filled.
type Lookups struct {
	Employees   []Employee
	Departments []Department
}

type Service struct {
	client Client
	logger *zap.Logger
}

func NewService(client Client, logger ...*zap.Logger) *Service {
	l := zap.L().Named("directory.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("directory.service")
	}
	return &Service{client: client, logger: l}
}

// Lookups loads the supporting lists fail-soft: a failed lookup is logged
// and its control renders empty, the rest of the page stays usable. This
// never returns an error.
func (s *Service) Lookups(ctx context.Context) Lookups {
	var out Lookups

	employees, err := s.client.Employees(ctx)
	if err != nil {
		s.logger.Warn("employee lookup failed, filter renders empty", zap.Error(err))
	} else {
		out.Employees = employees
	}

	departments, err := s.client.Departments(ctx)
	if err != nil {
		s.logger.Warn("department lookup failed, filter renders empty", zap.Error(err))
	} else {
		out.Departments = departments
	}
	return out
}
