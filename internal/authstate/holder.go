// Package authstate は認証状態を単一のステートマシンとして保持する。
//
// 認証イベントバスを1回だけ購読し、サインイン時はプロフィールを取得して
// 状態を遷移させる。プロフィール取得は非同期に行われるため、取得完了時に
// イベントのシーケンス番号を照合し、より新しいイベントが既に状態を
// 進めている場合は古い取得結果を破棄する。
package authstate

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"github.com/karthik/caremate/internal/auth"
	"github.com/karthik/caremate/internal/model"
)

// State は認証状態を表す。
type State string

const (
	// StateUnauthenticated はセッションが存在しない状態。
	StateUnauthenticated State = "unauthenticated"
	// StateAuthenticating はセッションは発行されたがプロフィール取得中の状態。
	StateAuthenticating State = "authenticating"
	// StateAuthenticated はセッションとプロフィールの両方が揃った状態。
	StateAuthenticated State = "authenticated"
	// StateErrored はプロフィール取得が失敗した状態。
	StateErrored State = "errored"
)

// Snapshot はある時点の認証状態を表す。
// Seqはこの状態を作ったイベントのシーケンス番号。
type Snapshot struct {
	State     State
	Seq       uint64
	UserID    string
	SessionID string
	Profile   *model.Profile
	Err       error
}

// ProfileFetcher はプロフィール取得のインターフェース。
// auth.ServiceのCurrentProfileが満たす。
type ProfileFetcher interface {
	CurrentProfile(ctx context.Context, userID string) (*model.Profile, error)
}

// Holder は認証状態を保持するステートマシン。
// Startで認証イベントバスの購読を開始し、Stopで停止する。
type Holder struct {
	mu       sync.Mutex
	snapshot Snapshot

	bus     *auth.Bus
	fetcher ProfileFetcher

	unsubscribe func()
	wg          sync.WaitGroup
	started     bool
}

// NewHolder はHolderを生成する。初期状態は未認証。
func NewHolder(bus *auth.Bus, fetcher ProfileFetcher) *Holder {
	return &Holder{
		snapshot: Snapshot{State: StateUnauthenticated},
		bus:      bus,
		fetcher:  fetcher,
	}
}

// Start はイベントバスの購読を開始する。
// 購読は1回だけ行われ、2回目以降の呼び出しは無視される。
func (h *Holder) Start(ctx context.Context) {
	h.mu.Lock()
	if h.started {
		h.mu.Unlock()
		return
	}
	h.started = true
	h.mu.Unlock()

	events, unsubscribe := h.bus.Subscribe()
	h.unsubscribe = unsubscribe

	h.wg.Add(1)
	go func() {
		defer h.wg.Done()
		for {
			select {
			case event, ok := <-events:
				if !ok {
					return
				}
				h.handleEvent(ctx, event)
			case <-ctx.Done():
				return
			}
		}
	}()
}

// Stop は購読を解除し、イベントループの終了を待つ。
func (h *Holder) Stop() {
	if h.unsubscribe != nil {
		h.unsubscribe()
	}
	h.wg.Wait()
}

// Snapshot は現在の認証状態を返す。
func (h *Holder) Snapshot() Snapshot {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.snapshot
}

// ClearError は保持しているエラーをクリアする。
// エラー状態のセッションは復元できないため、Errored状態は未認証に戻す。
// 回復には再サインインまたは新しい認証イベントが必要。
func (h *Holder) ClearError() {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.snapshot.Err = nil
	if h.snapshot.State == StateErrored {
		h.snapshot = Snapshot{
			State: StateUnauthenticated,
			Seq:   h.snapshot.Seq,
		}
	}
}

// handleEvent はイベント種別に応じて状態を遷移させる。
func (h *Holder) handleEvent(ctx context.Context, event auth.Event) {
	switch event.Type {
	case auth.EventSignedIn:
		h.mu.Lock()
		h.snapshot = Snapshot{
			State:     StateAuthenticating,
			Seq:       event.Seq,
			UserID:    event.UserID,
			SessionID: event.SessionID,
		}
		h.mu.Unlock()

		// プロフィール取得は非同期。完了時にシーケンス番号を照合する。
		h.wg.Add(1)
		go func() {
			defer h.wg.Done()
			profile, err := h.fetcher.CurrentProfile(ctx, event.UserID)
			h.applyProfileResult(event.Seq, profile, err)
		}()

	case auth.EventSignedOut:
		// サインアウトは取得中のプロフィールの有無に関わらず無条件でリセットする
		h.mu.Lock()
		h.snapshot = Snapshot{
			State: StateUnauthenticated,
			Seq:   event.Seq,
		}
		h.mu.Unlock()
	}
}

// applyProfileResult はプロフィール取得結果を状態に反映する。
// 取得を開始したシーケンス番号と現在の状態のシーケンス番号が一致しない場合、
// より新しいイベントが状態を進めているため結果を破棄する。
func (h *Holder) applyProfileResult(seq uint64, profile *model.Profile, err error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.snapshot.Seq != seq {
		slog.Debug("discarding stale profile fetch result",
			slog.Uint64("fetch_seq", seq),
			slog.Uint64("current_seq", h.snapshot.Seq),
		)
		return
	}

	if err != nil {
		var apiErr *model.APIError
		if errors.As(err, &apiErr) && apiErr.Code == model.ErrCodeProfileNotFound {
			// プロフィール不在はサービス側で強制サインアウト済み。
			// 未認証に戻すが、再サインインを促すためエラーは保持する。
			h.snapshot = Snapshot{
				State: StateUnauthenticated,
				Seq:   seq,
				Err:   err,
			}
			return
		}
		h.snapshot = Snapshot{
			State:     StateErrored,
			Seq:       seq,
			UserID:    h.snapshot.UserID,
			SessionID: h.snapshot.SessionID,
			Err:       err,
		}
		return
	}

	h.snapshot = Snapshot{
		State:     StateAuthenticated,
		Seq:       seq,
		UserID:    h.snapshot.UserID,
		SessionID: h.snapshot.SessionID,
		Profile:   profile,
	}
}
