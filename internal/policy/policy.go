package policy

import (
	"fmt"
	"sync"

	"github.com/casbin/casbin/v2"
	"github.com/casbin/casbin/v2/model"
	"github.com/heyyrintu/hrms-sub001/internal/domain"
	"go.uber.org/zap"
)

// Resource kinds.
const (
	KindCompOff        = "compoff"
	KindOnboardingTask = "onboarding_task"
	KindReview         = "review"
	KindGoal           = "goal"
	KindChangeRequest  = "change_request"
	KindDocument       = "document"
)

// Actions.
const (
	ActApprove       = "approve"
	ActUpdate        = "update"
	ActRead          = "read"
	ActSelfSubmit    = "self_submit"
	ActManagerSubmit = "manager_submit"
	ActListTeam      = "list_team"
	ActManage        = "manage"
	ActReview        = "review"
)

const modelText = `
[request_definition]
r = sub, obj, act

[policy_definition]
p = role, kind, act, rule

[policy_effect]
e = some(where (p.eft == allow))

[matchers]
m = r.sub.Role == p.role && r.obj.Kind == p.kind && r.act == p.act && eval(p.rule)
`

const (
	ruleAlways   = "true"
	ruleManager  = "r.sub.ID == r.obj.ManagerID"
	ruleAssignee = "r.sub.ID == r.obj.AssigneeID"
	ruleOwner    = "r.sub.ID == r.obj.OwnerID"
	ruleReviewer = "r.sub.ID == r.obj.ReviewerID"
	ruleParty    = "r.sub.ID == r.obj.OwnerID || r.sub.ID == r.obj.ReviewerID"
)

// unset fields are replaced so two empty IDs never compare equal.
const (
	anonymousSubject = "<anonymous>"
	unsetResource    = "<unset>"
)

// Subject is the acting employee.
type Subject struct {
	ID   string
	Role string
}

// Resource carries the relationships a rule may test.
type Resource struct {
	Kind       string
	OwnerID    string
	ManagerID  string
	AssigneeID string
	ReviewerID string
}

func SubjectOf(actor domain.Actor) Subject {
	return Subject{ID: actor.EmployeeID, Role: actor.Role}
}

//go:generate mockgen -source=policy.go -destination=mock/policy_mock.go -package=mock
type Evaluator interface {
	Allow(sub Subject, obj Resource, act string) (bool, error)
}

type evaluator struct {
	enforcer *casbin.Enforcer
	mu       sync.Mutex
	logger   *zap.Logger
}

type rule struct {
	role, kind, act, expr string
}

func defaultRules() []rule {
	admins := []string{domain.RoleHRAdmin, domain.RoleSuperAdmin}
	everyone := []string{domain.RoleEmployee, domain.RoleManager, domain.RoleHRAdmin, domain.RoleSuperAdmin}
	nonAdmins := []string{domain.RoleEmployee, domain.RoleManager}

	var rules []rule
	add := func(roles []string, kind, act, expr string) {
		for _, role := range roles {
			rules = append(rules, rule{role, kind, act, expr})
		}
	}

	add(admins, KindCompOff, ActApprove, ruleAlways)
	add([]string{domain.RoleManager}, KindCompOff, ActApprove, ruleManager)

	add(admins, KindOnboardingTask, ActUpdate, ruleAlways)
	add(nonAdmins, KindOnboardingTask, ActUpdate, ruleAssignee)

	add(admins, KindReview, ActRead, ruleAlways)
	add(nonAdmins, KindReview, ActRead, ruleParty)
	add(everyone, KindReview, ActSelfSubmit, ruleOwner)
	add(admins, KindReview, ActManagerSubmit, ruleAlways)
	add(nonAdmins, KindReview, ActManagerSubmit, ruleReviewer)
	add(append([]string{domain.RoleManager}, admins...), KindReview, ActListTeam, ruleAlways)

	add(everyone, KindGoal, ActManage, ruleOwner)

	add(admins, KindChangeRequest, ActReview, ruleAlways)

	add(admins, KindDocument, ActRead, ruleAlways)
	add(nonAdmins, KindDocument, ActRead, ruleOwner)

	return rules
}

func NewEvaluator(logger ...*zap.Logger) (Evaluator, error) {
	l := zap.L().Named("policy.evaluator")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("policy.evaluator")
	}

	m, err := model.NewModelFromString(modelText)
	if err != nil {
		return nil, fmt.Errorf("policy: load model: %w", err)
	}

	enforcer, err := casbin.NewEnforcer(m)
	if err != nil {
		return nil, fmt.Errorf("policy: new enforcer: %w", err)
	}

	for _, r := range defaultRules() {
		if _, err := enforcer.AddPolicy(r.role, r.kind, r.act, r.expr); err != nil {
			return nil, fmt.Errorf("policy: add rule %s/%s/%s: %w", r.role, r.kind, r.act, err)
		}
	}

	return &evaluator{enforcer: enforcer, logger: l}, nil
}

func (e *evaluator) Allow(sub Subject, obj Resource, act string) (bool, error) {
	if sub.ID == "" {
		sub.ID = anonymousSubject
	}
	obj.OwnerID = orUnset(obj.OwnerID)
	obj.ManagerID = orUnset(obj.ManagerID)
	obj.AssigneeID = orUnset(obj.AssigneeID)
	obj.ReviewerID = orUnset(obj.ReviewerID)

	e.mu.Lock()
	allowed, err := e.enforcer.Enforce(sub, obj, act)
	e.mu.Unlock()
	if err != nil {
		e.logger.Error("policy enforce failed",
			zap.String("role", sub.Role),
			zap.String("kind", obj.Kind),
			zap.String("act", act),
			zap.Error(err),
		)
		return false, err
	}

	e.logger.Debug("policy decision",
		zap.String("subject_id", sub.ID),
		zap.String("role", sub.Role),
		zap.String("kind", obj.Kind),
		zap.String("act", act),
		zap.Bool("allowed", allowed),
	)
	return allowed, nil
}

func orUnset(id string) string {
	if id == "" {
		return unsetResource
	}
	return id
}
