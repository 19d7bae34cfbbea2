package metrics

// Roster operation results
const (
	ResultSuccess  = "success"
	ResultNotFound = "not_found"
	ResultConflict = "conflict"
	ResultInvalid  = "invalid"
	ResultError    = "error"
)

// RecordSignup counts a signup attempt by result
func (m *Metrics) RecordSignup(result string) {
	m.safeExecute("RecordSignup", func() {
		m.SignupsTotal.WithLabelValues(result).Inc()
	})
}

// RecordUnregistration counts an unregister attempt by result
func (m *Metrics) RecordUnregistration(result string) {
	m.safeExecute("RecordUnregistration", func() {
		m.UnregistrationsTotal.WithLabelValues(result).Inc()
	})
}

// IncrementEventPublishErrors counts a roster event that was not delivered
func (m *Metrics) IncrementEventPublishErrors() {
	m.safeExecute("IncrementEventPublishErrors", func() {
		m.EventPublishErrors.Inc()
	})
}

// SetRosterTotals sets the entity count gauges
func (m *Metrics) SetRosterTotals(activities, students, participations int64) {
	m.safeExecute("SetRosterTotals", func() {
		m.ActivitiesTotal.Set(float64(activities))
		m.StudentsTotal.Set(float64(students))
		m.ParticipationsTotal.Set(float64(participations))
	})
}
