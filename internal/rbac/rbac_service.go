package rbac

import (
	"sync"

	"github.com/casbin/casbin/v2"
)

const (
	RoleSuperAdmin  = "SUPER_ADMIN"
	RoleSystemAdmin = "SYSTEM_ADMIN"
	RoleManager     = "MANAGER"
	RoleEmployee    = "EMPLOYEE"
)

const (
	ResourceHoliday         = "holiday"
	ResourceSchedule        = "schedule"
	ResourceScheduleRequest = "schedule_request"
	ResourceEmployee        = "employee"
)

const (
	ActionRead    = "read"
	ActionReadAll = "read_all"
	ActionCreate  = "create"
	ActionManage  = "manage"
	ActionDecide  = "decide"
)

//go:generate mockgen -source=rbac_service.go -destination=mock/rbac_service_mock.go -package=mock
type Service interface {
	Enforce(role, resource, action string) (bool, error)

	// Capability helpers so callers ask for an ability, not a role name.
	CanManageHolidays(role string) bool
	CanDecideRequests(role string) bool
	CanReadAllSchedules(role string) bool
}

type service struct {
	enforcer *casbin.Enforcer
	mu       sync.Mutex
}

func NewService(enforcer *casbin.Enforcer) Service {
	return &service{enforcer: enforcer}
}

func (s *service) Enforce(role, resource, action string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.enforcer.Enforce(role, resource, action)
}

func (s *service) CanManageHolidays(role string) bool {
	allowed, err := s.Enforce(role, ResourceHoliday, ActionManage)
	return err == nil && allowed
}

func (s *service) CanDecideRequests(role string) bool {
	allowed, err := s.Enforce(role, ResourceScheduleRequest, ActionDecide)
	return err == nil && allowed
}

func (s *service) CanReadAllSchedules(role string) bool {
	allowed, err := s.Enforce(role, ResourceSchedule, ActionReadAll)
	return err == nil && allowed
}
