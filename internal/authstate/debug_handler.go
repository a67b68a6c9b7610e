package authstate

import (
	"encoding/json"
	"net/http"
)

// snapshotResponse はスナップショットのJSON表現。
// プロフィール本体は含めず、取得済みかどうかだけを公開する。
type snapshotResponse struct {
	State      State  `json:"state"`
	Seq        uint64 `json:"seq"`
	UserID     string `json:"user_id,omitempty"`
	HasProfile bool   `json:"has_profile"`
	Error      string `json:"error,omitempty"`
}

// NewDebugHandler は現在の認証状態スナップショットを返すハンドラーを返す。
// 運用時の状態確認用で、メトリクスと同じ運用系mux配下に置くこと。
func NewDebugHandler(holder *Holder) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		snapshot := holder.Snapshot()

		resp := snapshotResponse{
			State:      snapshot.State,
			Seq:        snapshot.Seq,
			UserID:     snapshot.UserID,
			HasProfile: snapshot.Profile != nil,
		}
		if snapshot.Err != nil {
			resp.Error = snapshot.Err.Error()
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(resp)
	})
}
