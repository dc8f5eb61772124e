package metrics

import (
	"eco-quest-service/internal/domain"
	"github.com/prometheus/client_golang/prometheus"
)

// Recorder exposes gameplay counters to Prometheus.
type Recorder struct {
	playersOnline  prometheus.Gauge
	gamesStarted   *prometheus.CounterVec
	gamesCompleted *prometheus.CounterVec
	pointsAwarded  *prometheus.CounterVec
	badgesAwarded  *prometheus.CounterVec
	scores         *prometheus.HistogramVec
}

// NewRecorder registers the collectors on reg.
func NewRecorder(reg prometheus.Registerer) *Recorder {
	r := &Recorder{
		playersOnline: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "eco_quest_players_online",
			Help: "Number of connected players",
		}),
		gamesStarted: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "eco_quest_games_started_total",
			Help: "Mini-games started, by kind",
		}, []string{"kind"}),
		gamesCompleted: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "eco_quest_games_completed_total",
			Help: "Mini-games completed and merged, by kind",
		}, []string{"kind"}),
		pointsAwarded: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "eco_quest_points_awarded_total",
			Help: "Points awarded by completed mini-games, by kind",
		}, []string{"kind"}),
		badgesAwarded: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "eco_quest_badges_awarded_total",
			Help: "Badges earned by completed mini-games, by badge",
		}, []string{"badge"}),
		scores: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "eco_quest_game_score",
			Help:    "Correct answers per completed mini-game",
			Buckets: []float64{0, 1, 2, 3, 4, 5},
		}, []string{"kind"}),
	}
	reg.MustRegister(r.playersOnline, r.gamesStarted, r.gamesCompleted, r.pointsAwarded, r.badgesAwarded, r.scores)
	return r
}

func (r *Recorder) PlayerConnected() { r.playersOnline.Inc() }

func (r *Recorder) PlayerLeft() { r.playersOnline.Dec() }

func (r *Recorder) GameStarted(kind domain.GameKind) {
	r.gamesStarted.WithLabelValues(string(kind)).Inc()
}

func (r *Recorder) GameCompleted(c domain.Completion) {
	kind := string(c.Kind)
	r.gamesCompleted.WithLabelValues(kind).Inc()
	r.pointsAwarded.WithLabelValues(kind).Add(float64(c.PointsEarned))
	r.scores.WithLabelValues(kind).Observe(float64(c.Score))
	for _, b := range c.Badges {
		r.badgesAwarded.WithLabelValues(b).Inc()
	}
}
