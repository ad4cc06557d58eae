package export

import (
	"os"
	"testing"

	"github.com/vanderheijden86/xorwheel/pkg/metrics"
)

func TestMain(m *testing.M) {
	// export timings are asserted on, so collect them regardless of XW_METRICS
	metrics.SetEnabled(true)
	os.Exit(m.Run())
}
