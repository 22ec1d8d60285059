package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	signupsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "forma",
		Subsystem: "auth",
		Name:      "signups_total",
		Help:      "Accounts created since process start.",
	})
	loginsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "forma",
		Subsystem: "auth",
		Name:      "logins_total",
		Help:      "Successful logins since process start.",
	})
	sessionsStartedTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "forma",
		Subsystem: "workout",
		Name:      "sessions_started_total",
		Help:      "Workout sessions started since process start.",
	})
	workoutsLoggedTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "forma",
		Subsystem: "workout",
		Name:      "workouts_logged_total",
		Help:      "Workout progress entries logged since process start.",
	})
)

func init() {
	prometheus.MustRegister(signupsTotal, loginsTotal, sessionsStartedTotal, workoutsLoggedTotal)
}

// RecordSignup counts a completed signup.
func RecordSignup() { signupsTotal.Inc() }

// RecordLogin counts a successful login.
func RecordLogin() { loginsTotal.Inc() }

// RecordSessionStarted counts a started workout session.
func RecordSessionStarted() { sessionsStartedTotal.Inc() }

// RecordWorkoutLogged counts a logged workout.
func RecordWorkoutLogged() { workoutsLoggedTotal.Inc() }
