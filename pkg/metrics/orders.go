package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// OrderMetrics tracks driver order lifecycle activity.
type OrderMetrics struct {
	transitions *prometheus.CounterVec
	rejected    *prometheus.CounterVec
	itemsAdded  prometheus.Counter
	cashPaid    prometheus.Counter
}

// NewOrderMetrics registers the order lifecycle metrics on the provided registerer.
func NewOrderMetrics(reg prometheus.Registerer) *OrderMetrics {
	if reg == nil {
		return &OrderMetrics{}
	}
	transitions := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "order_status_transitions_total",
		Help: "Completed order status transitions by target status.",
	}, []string{"to_status"})
	rejected := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "order_status_transitions_rejected_total",
		Help: "Rejected order status transitions by reason.",
	}, []string{"reason"})
	itemsAdded := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "order_items_added_total",
		Help: "Items appended to orders by drivers.",
	})
	cashPaid := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "order_cash_payments_total",
		Help: "Cash orders marked as paid by drivers.",
	})
	reg.MustRegister(transitions, rejected, itemsAdded, cashPaid)
	return &OrderMetrics{
		transitions: transitions,
		rejected:    rejected,
		itemsAdded:  itemsAdded,
		cashPaid:    cashPaid,
	}
}

// IncTransition records a completed transition into the named status.
func (o *OrderMetrics) IncTransition(toStatus string) {
	if o == nil || o.transitions == nil {
		return
	}
	o.transitions.WithLabelValues(normalizeLabel(toStatus)).Inc()
}

// IncRejected records a rejected transition with the given reason.
func (o *OrderMetrics) IncRejected(reason string) {
	if o == nil || o.rejected == nil {
		return
	}
	o.rejected.WithLabelValues(normalizeLabel(reason)).Inc()
}

// AddItems records items appended to an order.
func (o *OrderMetrics) AddItems(count int) {
	if o == nil || o.itemsAdded == nil || count <= 0 {
		return
	}
	o.itemsAdded.Add(float64(count))
}

// IncCashPaid records a cash order settled by a driver.
func (o *OrderMetrics) IncCashPaid() {
	if o == nil || o.cashPaid == nil {
		return
	}
	o.cashPaid.Inc()
}

// OTPMetrics tracks the driver OTP login flow.
type OTPMetrics struct {
	issued   prometheus.Counter
	verified *prometheus.CounterVec
}

// NewOTPMetrics registers OTP flow metrics on the provided registerer.
func NewOTPMetrics(reg prometheus.Registerer) *OTPMetrics {
	if reg == nil {
		return &OTPMetrics{}
	}
	issued := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "otp_issued_total",
		Help: "One-time passcodes issued to drivers.",
	})
	verified := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "otp_verifications_total",
		Help: "OTP verification attempts by outcome.",
	}, []string{"outcome"})
	reg.MustRegister(issued, verified)
	return &OTPMetrics{issued: issued, verified: verified}
}

// IncIssued records an issued passcode.
func (o *OTPMetrics) IncIssued() {
	if o == nil || o.issued == nil {
		return
	}
	o.issued.Inc()
}

// IncVerification records a verification attempt outcome.
func (o *OTPMetrics) IncVerification(outcome string) {
	if o == nil || o.verified == nil {
		return
	}
	o.verified.WithLabelValues(normalizeLabel(outcome)).Inc()
}
