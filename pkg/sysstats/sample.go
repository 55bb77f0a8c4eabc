// Package sysstats samples host resource usage while a job runs and
// summarizes the collected series for the job report.
package sysstats

// Sample is one point-in-time measurement of host resource usage. Counter
// backed fields (network, disk) hold the delta since the previous sample.
type Sample struct {
	Time           int64   `json:"time"`
	CPULoadUser    float64 `json:"cpuLoadUser"`
	CPULoadSystem  float64 `json:"cpuLoadSystem"`
	MemoryUsedMb   float64 `json:"memoryUsedMb"`
	MemoryTotalMb  float64 `json:"memoryTotalMb"`
	NetworkReadKb  float64 `json:"networkReadKb"`
	NetworkWriteKb float64 `json:"networkWriteKb"`
	DiskReadKb     float64 `json:"diskReadKb"`
	DiskWriteKb    float64 `json:"diskWriteKb"`
}

// MetricSummary aggregates one metric over the sampled window.
type MetricSummary struct {
	Name string
	Min  float64
	Avg  float64
	Max  float64
}

var metrics = []struct {
	name    string
	extract func(*Sample) float64
}{
	{"CPU User (%)", func(s *Sample) float64 { return s.CPULoadUser }},
	{"CPU System (%)", func(s *Sample) float64 { return s.CPULoadSystem }},
	{"Memory Used (MB)", func(s *Sample) float64 { return s.MemoryUsedMb }},
	{"Network Read (KB)", func(s *Sample) float64 { return s.NetworkReadKb }},
	{"Network Write (KB)", func(s *Sample) float64 { return s.NetworkWriteKb }},
	{"Disk Read (KB)", func(s *Sample) float64 { return s.DiskReadKb }},
	{"Disk Write (KB)", func(s *Sample) float64 { return s.DiskWriteKb }},
}

// Summarize reduces samples to a min/avg/max row per metric, in a fixed
// order. An empty series yields no rows.
func Summarize(samples []Sample) []MetricSummary {
	if len(samples) == 0 {
		return []MetricSummary{}
	}

	summaries := make([]MetricSummary, 0, len(metrics))
	for _, metric := range metrics {
		summary := MetricSummary{Name: metric.name}

		var sum float64
		for i := range samples {
			value := metric.extract(&samples[i])

			if i == 0 || value < summary.Min {
				summary.Min = value
			}
			if i == 0 || value > summary.Max {
				summary.Max = value
			}
			sum += value
		}

		summary.Avg = sum / float64(len(samples))
		summaries = append(summaries, summary)
	}

	return summaries
}
