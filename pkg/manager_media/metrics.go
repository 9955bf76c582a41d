package manager_media

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/minvt/Ext-Gap-Media/pkg/bridge"
)

// managerMetrics Prometheus метрики менеджера медиа handle'ов
type managerMetrics struct {
	handlesCreated  prometheus.Counter
	handlesActive   prometheus.Gauge
	commandsTotal   *prometheus.CounterVec
	statusesTotal   *prometheus.CounterVec
	statusesDropped prometheus.Counter
}

// newManagerMetrics создает и регистрирует метрики в переданном реестре
func newManagerMetrics(reg prometheus.Registerer, namespace string) *managerMetrics {
	factory := promauto.With(reg)

	return &managerMetrics{
		handlesCreated: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "proxy",
			Name:      "handles_created_total",
			Help:      "Общее количество созданных медиа handle'ов",
		}),
		handlesActive: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "proxy",
			Name:      "handles_active",
			Help:      "Количество зарегистрированных медиа handle'ов",
		}),
		commandsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "proxy",
			Name:      "commands_total",
			Help:      "Команды, отправленные через мост, по действиям",
		}, []string{"action"}),
		statusesTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "proxy",
			Name:      "statuses_dispatched_total",
			Help:      "Диспетчеризованные уведомления нативной стороны по типам",
		}, []string{"msg_type"}),
		statusesDropped: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "proxy",
			Name:      "statuses_dropped_total",
			Help:      "Уведомления, отброшенные из-за неизвестного handle id",
		}),
	}
}

// instrumentedBridge обертка моста, считающая команды по действиям
type instrumentedBridge struct {
	inner   bridge.Bridge
	metrics *managerMetrics
}

// Exec реализует bridge.Bridge
func (b *instrumentedBridge) Exec(cmd bridge.Command) {
	b.metrics.commandsTotal.WithLabelValues(cmd.Action).Inc()
	b.inner.Exec(cmd)
}
