package metrics

import (
	"math/big"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds Prometheus collectors for registry operations.
type Metrics struct {
	KycMembersCreated  prometheus.Counter
	ProjectsCreated    prometheus.Counter
	ServiceFeeWei      prometheus.Counter
	OperationsRejected *prometheus.CounterVec
	ExpiredKycMembers  prometheus.Gauge
	ExpiredProjects    prometheus.Gauge
}

// New registers collectors on the default registry.
func New() *Metrics {
	return NewWithRegistry(prometheus.DefaultRegisterer)
}

// NewWithRegistry registers collectors on reg.
func NewWithRegistry(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		KycMembersCreated: factory.NewCounter(prometheus.CounterOpts{
			Name: "kyc_platform_kyc_members_created_total",
			Help: "Total number of KYC members registered",
		}),
		ProjectsCreated: factory.NewCounter(prometheus.CounterOpts{
			Name: "kyc_platform_projects_created_total",
			Help: "Total number of projects registered",
		}),
		ServiceFeeWei: factory.NewCounter(prometheus.CounterOpts{
			Name: "kyc_platform_service_fee_wei_total",
			Help: "Total project service fee forwarded to the authority, in wei",
		}),
		OperationsRejected: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "kyc_platform_operations_rejected_total",
			Help: "Rejected write operations, labeled by operation and reason",
		}, []string{"operation", "reason"}),
		ExpiredKycMembers: factory.NewGauge(prometheus.GaugeOpts{
			Name: "kyc_platform_invalid_kyc_members",
			Help: "KYC members that are expired or carry a superseded version",
		}),
		ExpiredProjects: factory.NewGauge(prometheus.GaugeOpts{
			Name: "kyc_platform_expired_projects",
			Help: "Projects past their expiry",
		}),
	}
}

func (m *Metrics) IncrementKycMembersCreated() {
	if m == nil {
		return
	}
	m.KycMembersCreated.Inc()
}

func (m *Metrics) IncrementProjectsCreated() {
	if m == nil {
		return
	}
	m.ProjectsCreated.Inc()
}

func (m *Metrics) AddServiceFee(wei *big.Int) {
	if m == nil || wei == nil || wei.Sign() <= 0 {
		return
	}
	f, _ := new(big.Float).SetInt(wei).Float64()
	m.ServiceFeeWei.Add(f)
}

func (m *Metrics) IncrementRejected(operation, reason string) {
	if m == nil {
		return
	}
	m.OperationsRejected.WithLabelValues(operation, reason).Inc()
}

func (m *Metrics) SetExpiredKycMembers(n int64) {
	if m == nil {
		return
	}
	m.ExpiredKycMembers.Set(float64(n))
}

func (m *Metrics) SetExpiredProjects(n int64) {
	if m == nil {
		return
	}
	m.ExpiredProjects.Set(float64(n))
}
