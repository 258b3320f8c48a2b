package snowflake

import (
	"testing"
	"time"
)

// TestGenerateUnique 连续生成的ID唯一且单调递增
func TestGenerateUnique(t *testing.T) {
	sf, err := NewSnowflake(1)
	if err != nil {
		t.Fatalf("new snowflake: %v", err)
	}

	seen := make(map[int64]bool)
	var last int64
	for i := 0; i < 10000; i++ {
		id := sf.Generate()
		if seen[id] {
			t.Fatalf("duplicate ID: %d", id)
		}
		seen[id] = true
		if id <= last {
			t.Fatalf("ID not increasing: %d after %d", id, last)
		}
		last = id
	}
}

// TestMachineIDRange 机器ID越界时拒绝
func TestMachineIDRange(t *testing.T) {
	if _, err := NewSnowflake(-1); err == nil {
		t.Error("negative machine ID accepted")
	}
	if _, err := NewSnowflake(maxMachineID + 1); err == nil {
		t.Error("oversized machine ID accepted")
	}
	if _, err := NewSnowflake(maxMachineID); err != nil {
		t.Errorf("max machine ID rejected: %v", err)
	}
}

// TestExtractTimestamp ID里的时间戳接近生成时刻
func TestExtractTimestamp(t *testing.T) {
	sf, err := NewSnowflake(1)
	if err != nil {
		t.Fatalf("new snowflake: %v", err)
	}

	before := time.Now().UnixMilli()
	id := sf.Generate()
	after := time.Now().UnixMilli()

	ts := sf.ExtractTimestamp(id)
	if ts < before || ts > after {
		t.Errorf("timestamp %d not in [%d, %d]", ts, before, after)
	}
}
