package scheduler

import (
	"context"
	"log"
	"sync/atomic"
	"time"

	"seismic-monitor/internal/classifier"
	"seismic-monitor/internal/metrics"
	"seismic-monitor/internal/models"
	"seismic-monitor/internal/policy"
	"seismic-monitor/internal/silence"
	"seismic-monitor/internal/source"
	"seismic-monitor/internal/status"
	"seismic-monitor/internal/window"
)

// Config периоды каденций планировщика в миллисекундах.
// ClassifyPeriodMs равен времени заполнения окна (емкость × период
// выборки): каждая классификация потребляет существенно свежее окно.
type Config struct {
	SamplePeriodMs    int64
	ClassifyPeriodMs  int64
	StatusPeriodMs    int64
	HeartbeatPeriodMs int64
}

// Scheduler кооперативный однопоточный цикл монитора. Все состояние
// (окно, счетчики, флаг silence, метки времени каденций) принадлежит
// одной goroutine цикла — конкурирующих писателей нет, блокировки не
// нужны. Каждая каденция хранит собственную метку последнего
// срабатывания и сравнивается с монотонными часами без накопления:
// при срабатывании метка выставляется в now, а не сдвигается на период,
// поэтому пропущенные дедлайны не наверстываются и никогда не дают
// повторных срабатываний.
type Scheduler struct {
	cfg        Config
	clock      Clock
	source     source.Source
	window     *window.Window
	classifier classifier.Classifier
	policy     *policy.Policy
	toggle     *silence.Toggle
	reporter   status.Reporter

	lastSampleMs    int64
	lastClassifyMs  int64
	lastStatusMs    int64
	lastHeartbeatMs int64
	lastReadErrMs   int64

	samples        uint64
	lastSample     models.Sample
	lastLabel      string
	lastConfidence float64
	readyLogged    bool

	// Снимок состояния для HTTP: единственный писатель — цикл,
	// читатели — goroutines HTTP сервера
	snapshot atomic.Pointer[models.StatusSnapshot]
}

// New создает планировщик
func New(cfg Config, clock Clock, src source.Source, win *window.Window,
	cls classifier.Classifier, pol *policy.Policy, tog *silence.Toggle,
	rep status.Reporter) *Scheduler {

	if clock == nil {
		clock = NewSystemClock()
	}
	s := &Scheduler{
		cfg:        cfg,
		clock:      clock,
		source:     src,
		window:     win,
		classifier: cls,
		policy:     pol,
		toggle:     tog,
		reporter:   rep,
	}
	s.publish(0)
	return s
}

// Run крутит цикл до отмены контекста. Между итерациями — короткий
// фиксированный sleep, ограничивающий потребление CPU; ожиданий
// внешних событий в цикле нет.
func (s *Scheduler) Run(ctx context.Context) {
	log.Printf("scheduler started: sample=%dms classify=%dms status=%dms",
		s.cfg.SamplePeriodMs, s.cfg.ClassifyPeriodMs, s.cfg.StatusPeriodMs)
	log.Println("waiting for sample window to fill...")

	for {
		select {
		case <-ctx.Done():
			log.Println("scheduler stopped")
			return
		default:
		}

		s.step(s.clock.NowMillis())
		s.clock.Sleep(time.Millisecond)
	}
}

// step выполняет одну итерацию цикла. Порядок каденций при
// одновременной готовности: выборка (питает окно), классификация
// (потребляет окно), статус (только чтение). Кнопка проверяется
// каждую итерацию независимо от каденций.
func (s *Scheduler) step(now int64) {
	if now-s.lastSampleMs >= s.cfg.SamplePeriodMs {
		s.acquire(now)
		s.lastSampleMs = now
	}

	if s.window.Ready() && now-s.lastClassifyMs >= s.cfg.ClassifyPeriodMs {
		s.classify(now)
		s.lastClassifyMs = now
	}

	if now-s.lastStatusMs >= s.cfg.StatusPeriodMs {
		if s.reporter != nil {
			s.reporter.Report(s.buildSnapshot(now))
		}
		s.lastStatusMs = now
	}

	if s.cfg.HeartbeatPeriodMs > 0 && now-s.lastHeartbeatMs >= s.cfg.HeartbeatPeriodMs {
		metrics.Heartbeat.Inc()
		s.lastHeartbeatMs = now
	}

	s.checkButton(now)
	s.publish(now)
}

// acquire читает один отсчет и кладет его в окно. Ошибка чтения или
// физически неправдоподобное значение пропускают тик: отравленные
// значения в окно не попадают.
func (s *Scheduler) acquire(now int64) {
	v, err := s.source.Read()
	if err != nil || !source.Plausible(v) {
		metrics.SampleReadErrors.Inc()
		// Путь ошибки лежит на 100 Гц цикле — журналируем не чаще
		// одного раза за период статуса
		if now-s.lastReadErrMs >= s.cfg.StatusPeriodMs {
			if err != nil {
				log.Printf("sample source read failed, skipping tick: %v", err)
			} else {
				log.Printf("sample source value %.3f out of plausible range, skipping tick", v)
			}
			s.lastReadErrMs = now
		}
		return
	}

	s.window.Push(v)
	s.samples++
	s.lastSample = models.Sample{Velocity: v, Timestamp: now}
	metrics.SamplesAcquired.Inc()

	if s.window.Ready() && !s.readyLogged {
		s.readyLogged = true
		metrics.WindowReady.Set(1)
		log.Printf("sample window filled (%d samples), classification enabled", s.window.Capacity())
	}
}

// classify снимает окно, прогоняет классификатор и отдает результат
// политике. Длительность инференса меряется теми же монотонными
// часами, что и каденции.
func (s *Scheduler) classify(now int64) {
	snap := s.window.Snapshot()
	if snap == nil {
		return
	}

	startMs := s.clock.NowMillis()
	label, confidence := s.classifier.Classify(snap)
	durationMs := s.clock.NowMillis() - startMs

	// Мягкое реальное время: долгий инференс сдвигает каденции, но
	// состояние не портит
	if durationMs > s.cfg.SamplePeriodMs {
		log.Printf("classifier inference took %dms, longer than the %dms sampling period",
			durationMs, s.cfg.SamplePeriodMs)
	}

	metrics.ClassificationsTotal.WithLabelValues(label.String()).Inc()
	metrics.InferenceDuration.Observe(float64(durationMs) / 1000.0)

	s.lastLabel = label.String()
	s.lastConfidence = confidence

	s.policy.Evaluate(models.ClassificationResult{
		Label:         label,
		LabelName:     label.String(),
		Confidence:    confidence,
		InferenceTime: durationMs,
		Timestamp:     now,
	})
}

// checkButton опрашивает кнопку silence; принятое переключение гасит
// удерживаемый индикатор и подтверждается различимым шаблоном:
// 1 импульс — беззвучный режим включен, 3 — выключен
func (s *Scheduler) checkButton(now int64) {
	if s.toggle == nil || !s.toggle.Check(now) {
		return
	}

	silenced := s.toggle.Silenced()
	s.policy.SetSilenced(silenced)
	s.policy.ResetLatch()

	if silenced {
		s.policy.Feedback(1, 100)
		log.Println("[BUTTON] alerts SILENCED")
	} else {
		s.policy.Feedback(3, 100)
		log.Println("[BUTTON] alerts ENABLED")
	}
}

// Snapshot возвращает последний опубликованный снимок состояния
func (s *Scheduler) Snapshot() models.StatusSnapshot {
	if p := s.snapshot.Load(); p != nil {
		return *p
	}
	return models.StatusSnapshot{}
}

func (s *Scheduler) buildSnapshot(now int64) models.StatusSnapshot {
	return models.StatusSnapshot{
		Ready:          s.window.Ready(),
		Silenced:       s.policy.Silenced(),
		Counters:       s.policy.Counters(),
		Samples:        s.samples,
		LastSample:     s.lastSample,
		LastLabel:      s.lastLabel,
		LastConfidence: s.lastConfidence,
		UptimeMs:       now,
	}
}

func (s *Scheduler) publish(now int64) {
	snap := s.buildSnapshot(now)
	s.snapshot.Store(&snap)
}
