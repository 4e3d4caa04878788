package analytics

import (
	"context"
	"encoding/json"
	"time"

	"github.com/jhoicas/bar-stock-api/internal/application/dto"
	"github.com/jhoicas/bar-stock-api/internal/domain"
	"github.com/jhoicas/bar-stock-api/internal/domain/entity"
	"github.com/jhoicas/bar-stock-api/internal/domain/repository"
	"github.com/jhoicas/bar-stock-api/pkg/logger"
)

const summaryCacheKey = "barstock:report:summary"

// ReportCache caché de informes (redis o no-op). Un fallo de caché nunca rompe el informe.
type ReportCache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
}

// SummaryRenderer exporta el resumen a PDF.
type SummaryRenderer interface {
	RenderSummary(summary dto.FinancialSummaryDTO) ([]byte, error)
}

// ReportUseCase carga las colecciones fuera de transacción (informes toleran datos algo atrasados)
// y delega el cálculo en las funciones puras del paquete.
type ReportUseCase struct {
	repos    repository.Repos
	cache    ReportCache
	renderer SummaryRenderer
	ttl      time.Duration
	clock    domain.Clock
	log      *logger.Logger
}

// NewReportUseCase construye el caso de uso.
func NewReportUseCase(repos repository.Repos, cache ReportCache, renderer SummaryRenderer, ttl time.Duration, clock domain.Clock, log *logger.Logger) *ReportUseCase {
	return &ReportUseCase{repos: repos, cache: cache, renderer: renderer, ttl: ttl, clock: clock, log: log}
}

type ledgerSnapshot struct {
	orders   []*entity.Order
	products []*entity.Product
	deposits []*entity.Deposit
	users    []*entity.User
	cash     *entity.AvailableCash
}

// load lee las colecciones en paralelo.
func (uc *ReportUseCase) load(ctx context.Context) (*ledgerSnapshot, error) {
	type result struct {
		apply func(s *ledgerSnapshot)
		err   error
	}
	ch := make(chan result, 5)
	go func() {
		v, err := uc.repos.Orders.List(ctx, repository.OrderFilter{})
		ch <- result{func(s *ledgerSnapshot) { s.orders = v }, err}
	}()
	go func() {
		v, err := uc.repos.Products.ListAll(ctx)
		ch <- result{func(s *ledgerSnapshot) { s.products = v }, err}
	}()
	go func() {
		v, err := uc.repos.Deposits.List(ctx, "")
		ch <- result{func(s *ledgerSnapshot) { s.deposits = v }, err}
	}()
	go func() {
		v, err := uc.repos.Users.List(ctx)
		ch <- result{func(s *ledgerSnapshot) { s.users = v }, err}
	}()
	go func() {
		v, err := uc.repos.Cash.Get(ctx)
		ch <- result{func(s *ledgerSnapshot) { s.cash = v }, err}
	}()

	snap := &ledgerSnapshot{}
	var firstErr error
	for i := 0; i < 5; i++ {
		r := <-ch
		if r.err != nil {
			if firstErr == nil {
				firstErr = r.err
			}
			continue
		}
		r.apply(snap)
	}
	if firstErr != nil {
		return nil, firstErr
	}
	return snap, nil
}

// Summary resumen financiero (cacheado durante ttl).
func (uc *ReportUseCase) Summary(ctx context.Context, actor domain.Actor) (*dto.FinancialSummaryDTO, error) {
	if !actor.IsAdmin() {
		return nil, domain.ErrForbidden
	}
	if raw, ok, err := uc.cache.Get(ctx, summaryCacheKey); err != nil {
		uc.log.Warn().Err(err).Msg("caché de informes no disponible")
	} else if ok {
		var cached dto.FinancialSummaryDTO
		if err := json.Unmarshal(raw, &cached); err == nil {
			return &cached, nil
		}
	}

	snap, err := uc.load(ctx)
	if err != nil {
		return nil, err
	}
	summary := ComputeSummary(SummaryInput{
		Orders:        snap.orders,
		Products:      snap.products,
		Deposits:      snap.deposits,
		Users:         snap.users,
		AvailableCash: snap.cash.Amount,
		Now:           uc.clock.Now(),
	})

	if raw, err := json.Marshal(summary); err == nil {
		if err := uc.cache.Set(ctx, summaryCacheKey, raw, uc.ttl); err != nil {
			uc.log.Warn().Err(err).Msg("no se pudo cachear el resumen")
		}
	}
	return &summary, nil
}

// SummaryPDF resumen financiero exportado a PDF.
func (uc *ReportUseCase) SummaryPDF(ctx context.Context, actor domain.Actor) ([]byte, error) {
	summary, err := uc.Summary(ctx, actor)
	if err != nil {
		return nil, err
	}
	return uc.renderer.RenderSummary(*summary)
}

// Debtors ranking de deudores (visible para todos los usuarios, como en el tablón del bar).
func (uc *ReportUseCase) Debtors(ctx context.Context) (*dto.DebtorsBoardDTO, error) {
	snap, err := uc.load(ctx)
	if err != nil {
		return nil, err
	}
	board := ComputeDebtors(snap.users, snap.orders, snap.deposits)
	return &board, nil
}

// Activity feed de actividad, más reciente primero.
func (uc *ReportUseCase) Activity(ctx context.Context, actor domain.Actor, limit int) ([]dto.ActivityDTO, error) {
	if !actor.IsAdmin() {
		return nil, domain.ErrForbidden
	}
	if limit <= 0 || limit > 500 {
		limit = 100
	}
	orders, err := uc.repos.Orders.List(ctx, repository.OrderFilter{})
	if err != nil {
		return nil, err
	}
	deposits, err := uc.repos.Deposits.List(ctx, "")
	if err != nil {
		return nil, err
	}
	logs, err := uc.repos.Cash.ListLogs(ctx, limit)
	if err != nil {
		return nil, err
	}
	thefts, err := uc.repos.Thefts.List(ctx)
	if err != nil {
		return nil, err
	}
	return BuildActivity(orders, deposits, logs, thefts, limit), nil
}

// UserStats estadísticas de un usuario (él mismo o un admin).
func (uc *ReportUseCase) UserStats(ctx context.Context, actor domain.Actor, userID string) (*dto.UserStatsDTO, error) {
	if !actor.CanActOn(userID) {
		return nil, domain.ErrForbidden
	}
	user, err := uc.repos.Users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	orders, err := uc.repos.Orders.List(ctx, repository.OrderFilter{UserID: userID})
	if err != nil {
		return nil, err
	}
	deposits, err := uc.repos.Deposits.List(ctx, userID)
	if err != nil {
		return nil, err
	}
	stats := ComputeUserStats(user, orders, deposits)
	return &stats, nil
}

// ListThefts registros de robo, más reciente primero.
func (uc *ReportUseCase) ListThefts(ctx context.Context, actor domain.Actor) ([]*entity.TheftRecord, error) {
	if !actor.IsAdmin() {
		return nil, domain.ErrForbidden
	}
	list, err := uc.repos.Thefts.List(ctx)
	if err != nil {
		return nil, err
	}
	for i, j := 0, len(list)-1; i < j; i, j = i+1, j-1 {
		list[i], list[j] = list[j], list[i]
	}
	return list, nil
}
