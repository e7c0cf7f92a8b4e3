package motion

import "testing"

func TestCollisionReport_Message(t *testing.T) {
	tests := []struct {
		total int
		want  string
	}{
		{0, "There are no collisions"},
		{1, "There is 1 collision"},
		{2, "There are 2 collisions"},
		{7, "There are 7 collisions"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			report := CollisionReport{TotalBoneCollisions: tt.total}
			if got := report.Message(); got != tt.want {
				t.Errorf("Message() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestCollisionReport_Pair(t *testing.T) {
	report := createCollidingReport([2]string{"femur", "tibia"})
	report.PerPair = append(report.PerPair, PairResult{BoneA: "femur", BoneB: "patella"})

	if _, ok := report.Pair("tibia", "femur"); !ok {
		t.Error("lookup should ignore order")
	}
	if _, ok := report.Pair("tibia", "patella"); ok {
		t.Error("unknown pair should not be found")
	}

	colliding := report.Colliding()
	if len(colliding) != 1 || colliding[0].BoneB != "tibia" {
		t.Errorf("Colliding() = %v", colliding)
	}
}
