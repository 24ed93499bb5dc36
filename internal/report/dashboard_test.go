package report

import (
	"testing"

	"github.com/hitoshi/timejoy/internal/model"
)

// TestBuildView_UserSeesOwnEntriesAndRecent は一般ユーザーが自分のエントリの
// 集計と直近一覧を受け取ることを検証する。
func TestBuildView_UserSeesOwnEntriesAndRecent(t *testing.T) {
	viewer := &model.User{ID: "u1", Username: "alice", Role: model.RoleUser}
	own := []model.TimeEntry{
		testEntry("u1", "2024-01-01", "1", "m1", 60),
	}
	all := []model.TimeEntry{
		testEntry("u1", "2024-01-01", "1", "m1", 60),
		testEntry("u2", "2024-01-01", "2", "m2", 120),
		testEntry("u3", "2024-01-01", "3", "m3", 30),
	}

	view := BuildView(viewer, own, all, testWorkTypes, testMoods, "2024-01-01")

	if view.PrivacyAggregation {
		t.Error("PrivacyAggregation = true, want false for regular user")
	}
	// 集計は自分のエントリのみが対象
	if view.Summary.TotalHours != 1.0 {
		t.Errorf("Summary.TotalHours = %v, want 1.0", view.Summary.TotalHours)
	}
	if view.Summary.ActiveUserCount != 1 {
		t.Errorf("Summary.ActiveUserCount = %d, want 1", view.Summary.ActiveUserCount)
	}
	if len(view.Recent) != 1 {
		t.Errorf("len(Recent) = %d, want 1", len(view.Recent))
	}
}

// TestBuildView_AdminAggregatesAllUsers は管理者が全ユーザーのエントリに対する
// 集計値のみを受け取り、個別エントリ行を一切受け取らないことを検証する。
func TestBuildView_AdminAggregatesAllUsers(t *testing.T) {
	viewer := &model.User{ID: "admin-1", Username: "Admin", Role: model.RoleAdmin}
	own := []model.TimeEntry{} // 管理者自身の記録は空
	all := []model.TimeEntry{
		testEntry("u1", "2024-01-01", "1", "m1", 60),
		testEntry("u2", "2024-01-01", "2", "m2", 120),
		testEntry("u3", "2024-01-02", "3", "m3", 30),
	}

	view := BuildView(viewer, own, all, testWorkTypes, testMoods, "2024-01-01")

	if !view.PrivacyAggregation {
		t.Error("PrivacyAggregation = false, want true for admin")
	}
	if view.Summary.ActiveUserCount != 3 {
		t.Errorf("Summary.ActiveUserCount = %d, want 3", view.Summary.ActiveUserCount)
	}
	if view.Summary.TotalHours != 3.5 {
		t.Errorf("Summary.TotalHours = %v, want 3.5", view.Summary.TotalHours)
	}
	// 個別行は抑止される
	if view.Recent != nil {
		t.Errorf("Recent = %+v, want nil for admin viewer", view.Recent)
	}
	// 今日の集計も全ユーザー対象
	if view.Today[0].Hours != 1.0 || view.Today[1].Hours != 2.0 {
		t.Errorf("Today = %+v, want aggregation over all users", view.Today)
	}
}
