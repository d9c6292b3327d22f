// internal/workers/generation/generate-resource/handler.go
package generateresource

import (
	"context"
	"encoding/json"
	"time"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"

	"revintel-workers/internal/collaborators/crm"
	"revintel-workers/internal/common/errors"
	"revintel-workers/internal/common/logger"
	"revintel-workers/internal/common/metrics"
	"revintel-workers/internal/generation"
)

const TaskType = "generate-resource"

// Handler runs the full generation pipeline for one process instance:
// validate, enrich from CRM, generate, then persist, index and notify.
// The post-generation steps are best effort; the customer's document is
// never lost to a bookkeeping failure.
type Handler struct {
	config     *Config
	service    *generation.Service
	validator  Validator
	crm        CustomerLookup
	history    HistoryRecorder
	index      ResourceIndex
	mailer     CompletionMailer
	errHandler *errors.ErrorHandler
	logger     logger.Logger
}

type HandlerOptions struct {
	Config    *Config
	Service   *generation.Service
	Validator Validator
	CRM       CustomerLookup
	History   HistoryRecorder
	Index     ResourceIndex
	Mailer    CompletionMailer
	Logger    logger.Logger
}

func NewHandler(opts HandlerOptions) *Handler {
	log := opts.Logger.WithFields(map[string]interface{}{"taskType": TaskType})
	return &Handler{
		config:     opts.Config,
		service:    opts.Service,
		validator:  opts.Validator,
		crm:        opts.CRM,
		history:    opts.History,
		index:      opts.Index,
		mailer:     opts.Mailer,
		errHandler: errors.NewErrorHandler(log),
		logger:     log,
	}
}

func (h *Handler) Handle(client worker.JobClient, job entities.Job) {
	startTime := time.Now()
	metrics.WorkerJobsActive.WithLabelValues(TaskType).Inc()
	defer metrics.WorkerJobsActive.WithLabelValues(TaskType).Dec()

	ctx, cancel := context.WithTimeout(context.Background(), h.config.Timeout)
	defer cancel()

	h.logger.Info("Processing generation request", map[string]interface{}{
		"jobKey":             job.Key,
		"processInstanceKey": job.ProcessInstanceKey,
	})

	variables := []byte(job.Variables)

	var input Input
	if err := json.Unmarshal(variables, &input); err != nil {
		metrics.WorkerJobsFailed.WithLabelValues(TaskType, string(errors.ErrCodeRequestValidation)).Inc()
		h.errHandler.HandleJobError(ctx, client, job, errors.NewRequestValidationError(err.Error()))
		return
	}

	if h.validator != nil {
		if err := h.validator.Validate(input.ResourceID, variables); err != nil {
			metrics.WorkerJobsFailed.WithLabelValues(TaskType, string(errors.ErrCodeRequestValidation)).Inc()
			h.errHandler.HandleJobError(ctx, client, job, errors.NewRequestValidationError(err.Error()))
			return
		}
	}

	output, err := h.execute(ctx, &input)
	if err != nil {
		metrics.WorkerJobsFailed.WithLabelValues(TaskType, string(errors.ErrCodeGenerationFailed)).Inc()
		h.errHandler.HandleJobError(ctx, client, job, err)
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

func (h *Handler) execute(ctx context.Context, input *Input) (*Output, error) {
	req := &generation.Request{
		ResourceID:   generation.ResourceID(input.ResourceID),
		ResourceType: input.ResourceType,
		CustomerID:   input.CustomerID,
		Customer:     h.enrichCustomer(ctx, input),
		Product:      input.Product,
		Stakeholders: input.Stakeholders,
	}

	out, err := h.service.Generate(ctx, req)
	if err != nil {
		return nil, err
	}

	h.persist(ctx, out, req)

	return &Output{
		RequestID:         out.RequestID,
		Content:           out.Result.Content,
		Quality:           out.Result.Quality,
		GenerationMethod:  string(out.Result.GenerationMethod),
		Cost:              out.Result.Cost,
		Duration:          out.Result.DurationMS,
		Sources:           out.Result.Sources,
		Confidence:        out.Result.Confidence,
		ComplexityScore:   out.Analysis.Score,
		RecommendedMethod: string(out.Analysis.Recommendation),
	}, nil
}

// enrichCustomer fills blanks in the provided customer data from the CRM
// record. Lookup failures degrade to the provided data; a stale CRM never
// blocks a generation.
func (h *Handler) enrichCustomer(ctx context.Context, input *Input) generation.CustomerData {
	if !h.config.CRMEnabled || h.crm == nil || input.CustomerID == "" {
		return input.Customer
	}

	record, err := h.crm.GetCustomerAssets(ctx, input.CustomerID)
	if err != nil {
		h.logger.WithError(err).Warn("CRM enrichment failed, proceeding with provided data", map[string]interface{}{
			"customerId": input.CustomerID,
		})
		return input.Customer
	}
	return crm.MergeCustomerData(input.Customer, record)
}

// persist runs the post-generation bookkeeping. Each step logs and
// continues on failure.
func (h *Handler) persist(ctx context.Context, out *generation.Outcome, req *generation.Request) {
	if h.config.HistoryEnabled && h.history != nil {
		if err := h.history.Record(ctx, out, req.CustomerID, req.ResourceID); err != nil {
			h.logger.WithError(err).Warn("History write failed", map[string]interface{}{
				"requestId": out.RequestID,
			})
		}
	}

	if h.config.IndexEnabled && h.index != nil {
		if err := h.index.Index(ctx, out, req.CustomerID, req.ResourceID); err != nil {
			h.logger.WithError(err).Warn("Resource indexing failed", map[string]interface{}{
				"requestId": out.RequestID,
			})
		}
	}

	if h.config.EmailEnabled && h.mailer != nil && out.Result.DocumentURL != "" {
		if err := h.mailer.SendCompletionEmail(ctx, req.Customer, req.ResourceID, out.Result.DocumentURL); err != nil {
			h.logger.WithError(err).Warn("Completion email failed", map[string]interface{}{
				"requestId": out.RequestID,
			})
		}
	}
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
