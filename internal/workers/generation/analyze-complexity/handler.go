// internal/workers/generation/analyze-complexity/handler.go
package analyzecomplexity

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"

	"revintel-workers/internal/common/logger"
	"revintel-workers/internal/common/metrics"
	"revintel-workers/internal/generation"
)

const TaskType = "analyze-complexity"

// Handler scores a generation request and recommends a tier so the BPMN
// process can branch before committing to a generator. Pure computation;
// the only failure mode is malformed input.
type Handler struct {
	config *Config
	logger logger.Logger
}

func NewHandler(config *Config, log logger.Logger) *Handler {
	return &Handler{
		config: config,
		logger: log.WithFields(map[string]interface{}{"taskType": TaskType}),
	}
}

func (h *Handler) Handle(client worker.JobClient, job entities.Job) {
	startTime := time.Now()
	metrics.WorkerJobsActive.WithLabelValues(TaskType).Inc()
	defer metrics.WorkerJobsActive.WithLabelValues(TaskType).Dec()

	h.logger.Info("Processing complexity analysis", map[string]interface{}{
		"jobKey":             job.Key,
		"processInstanceKey": job.ProcessInstanceKey,
	})

	var input Input
	if err := json.Unmarshal([]byte(job.Variables), &input); err != nil {
		h.failJob(client, job, "GENERATION_BAD_REQUEST", fmt.Sprintf("parse input: %v", err))
		return
	}
	if input.ResourceID == "" {
		h.failJob(client, job, "GENERATION_BAD_REQUEST", "resourceId is required")
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), h.config.Timeout)
	defer cancel()

	output, err := h.execute(ctx, &input)
	if err != nil {
		h.failJob(client, job, "GENERATION_BAD_REQUEST", err.Error())
		return
	}

	metrics.WorkerJobsCompleted.WithLabelValues(TaskType).Inc()
	metrics.WorkerJobDuration.WithLabelValues(TaskType).Observe(time.Since(startTime).Seconds())
	h.completeJob(client, job, output)
}

// Execute is the test entry point around the job plumbing.
func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	return h.execute(ctx, input)
}

func (h *Handler) execute(_ context.Context, input *Input) (*Output, error) {
	analysis := generation.AnalyzeComplexity(&generation.Request{
		ResourceID:   generation.ResourceID(input.ResourceID),
		ResourceType: input.ResourceType,
		CustomerID:   input.CustomerID,
		Customer:     input.Customer,
		Product:      input.Product,
		Stakeholders: input.Stakeholders,
	})

	h.logger.Info("Complexity analysis complete", map[string]interface{}{
		"resourceId":     input.ResourceID,
		"customerId":     input.CustomerID,
		"score":          analysis.Score,
		"recommendation": analysis.Recommendation,
	})

	return &Output{
		ComplexityScore:   analysis.Score,
		ComplexityFactors: analysis.Factors,
		RecommendedMethod: string(analysis.Recommendation),
	}, nil
}

func (h *Handler) completeJob(client worker.JobClient, job entities.Job, output *Output) {
	cmd, err := client.NewCompleteJobCommand().
		JobKey(job.Key).
		VariablesFromObject(output)
	if err != nil {
		h.logger.Error("failed to create complete job command", map[string]interface{}{"error": err})
		return
	}
	if _, err = cmd.Send(context.Background()); err != nil {
		h.logger.Error("failed to send complete job command", map[string]interface{}{"error": err})
	}
}

func (h *Handler) failJob(client worker.JobClient, job entities.Job, errorCode, errorMessage string) {
	metrics.WorkerJobsFailed.WithLabelValues(TaskType, errorCode).Inc()
	h.logger.Error("job failed", map[string]interface{}{
		"jobKey":       job.Key,
		"errorCode":    errorCode,
		"errorMessage": errorMessage,
	})

	_, err := client.NewThrowErrorCommand().
		JobKey(job.Key).
		ErrorCode(errorCode).
		ErrorMessage(errorMessage).
		Send(context.Background())
	if err != nil {
		h.logger.Error("failed to throw error", map[string]interface{}{"error": err})
	}
}
