package planner

import (
	"context"
	"errors"
	"strings"

	"github.com/maheshrc27/marketing-planner/internal/extract"
	"github.com/maheshrc27/marketing-planner/internal/llm"
	"github.com/maheshrc27/marketing-planner/internal/metrics"
	"go.uber.org/zap"
)

const (
	tagAudienceOptions  = "AUDIENCE_OPTIONS"
	tagObjectiveOptions = "OBJECTIVE_OPTIONS"
	tagMessageOptions   = "MESSAGE_OPTIONS"
	tagMatrixUpdates    = "MATRIX_UPDATES"
	tagChangedCells     = "CHANGED_CELLS"
)

type RefineInput struct {
	BusinessDescription string        `json:"business_description"`
	Matrix              Matrix        `json:"matrix"`
	History             []llm.Message `json:"history"`
	Message             string        `json:"message"`
}

type ChangedCell struct {
	Field string `json:"field"`
	Index int    `json:"index"`
}

type RefineReply struct {
	Message          string        `json:"message"`
	AudienceOptions  []string      `json:"audience_options,omitempty"`
	ObjectiveOptions []string      `json:"objective_options,omitempty"`
	MessageOptions   []string      `json:"message_options,omitempty"`
	Matrix           Matrix        `json:"matrix"`
	ChangedCells     []ChangedCell `json:"changed_cells,omitempty"`
	History          []llm.Message `json:"history"`
}

type optionsBlock struct {
	Options []string `json:"options"`
}

type cellsBlock struct {
	Cells []ChangedCell `json:"cells"`
}

// RefineMatrix runs one turn of the conversational matrix editor. Tagged
// blocks are removed from the displayed message; a block that cannot be
// parsed is skipped.
func (p *Planner) RefineMatrix(ctx context.Context, caller Caller, in RefineInput) (*RefineReply, error) {
	if strings.TrimSpace(in.Message) == "" {
		return nil, errors.New("message is required")
	}

	contents := make([]llm.Message, 0, len(in.History)+2)
	contents = append(contents, llm.Message{Role: llm.RoleUser, Text: refinePrompt(in)})
	contents = append(contents, in.History...)
	contents = append(contents, llm.Message{Role: llm.RoleUser, Text: in.Message})

	raw, err := p.llm.Chat(ctx, contents, llm.Options{Temperature: 0.7, MaxOutputTokens: 2048})
	metrics.ObserveLLM("refine", err)
	if err != nil {
		return nil, &GenerationError{Step: "refine", Err: err}
	}

	reply := &RefineReply{Matrix: cloneMatrix(in.Matrix)}
	text := raw

	text, reply.AudienceOptions = p.options(caller, text, tagAudienceOptions)
	text, reply.ObjectiveOptions = p.options(caller, text, tagObjectiveOptions)
	text, reply.MessageOptions = p.options(caller, text, tagMessageOptions)

	var updates Matrix
	if stripped, ok := p.block(caller, text, tagMatrixUpdates, &updates); ok {
		text = stripped
		reply.ChangedCells = applyUpdates(&reply.Matrix, updates)
	}

	var cells cellsBlock
	if stripped, ok := p.block(caller, text, tagChangedCells, &cells); ok {
		text = stripped
		if len(cells.Cells) > 0 {
			reply.ChangedCells = cells.Cells
		}
	}

	reply.Message = strings.TrimSpace(text)
	reply.History = append(append([]llm.Message{}, in.History...),
		llm.Message{Role: llm.RoleUser, Text: in.Message},
		llm.Message{Role: llm.RoleModel, Text: raw},
	)
	return reply, nil
}

func (p *Planner) options(caller Caller, text, tag string) (string, []string) {
	var block optionsBlock
	stripped, ok := p.block(caller, text, tag, &block)
	if !ok {
		return text, nil
	}
	return stripped, block.Options
}

// block decodes a tagged object, written either inline or as a fenced json
// block right after the tag, and strips it from text.
func (p *Planner) block(caller Caller, text, tag string, v any) (string, bool) {
	stripped, err := extract.TaggedBlock(text, tag, v)
	if err == nil {
		return stripped, true
	}
	if !strings.Contains(text, tag+":") {
		return text, false
	}
	if stripped, ferr := fencedBlock(text, tag, v); ferr == nil {
		return stripped, true
	}
	p.log.Warn("skipping unparseable chat block", append(caller.fields("refine"), zap.String("tag", tag), zap.Error(err))...)
	return text, false
}

func fencedBlock(text, tag string, v any) (string, error) {
	marker := tag + ":"
	start := strings.Index(text, marker)
	rest := text[start+len(marker):]
	if !strings.HasPrefix(strings.TrimSpace(rest), "```json") {
		return text, &extract.ParseError{Kind: tag, Reason: "no fenced block after tag"}
	}

	open := strings.Index(rest, "```json") + len("```json")
	closing := strings.Index(rest[open:], "```")
	if closing < 0 {
		return text, &extract.ParseError{Kind: tag, Reason: "unterminated fenced block"}
	}
	end := open + closing + len("```")

	if err := extract.FencedJSON(rest[:end], v); err != nil {
		return text, err
	}
	return text[:start] + rest[end:], nil
}

// applyUpdates copies every non-empty cell of u into m and reports which
// cells changed. Objectives that break the behavior rule are ignored.
func applyUpdates(m *Matrix, u Matrix) []ChangedCell {
	var changed []ChangedCell
	apply := func(field string, dst []string, src []string, check func(string) error) {
		for i := 0; i < len(dst) && i < len(src); i++ {
			v := strings.TrimSpace(src[i])
			if v == "" || v == dst[i] {
				continue
			}
			if check != nil && check(v) != nil {
				zap.L().Warn("ignoring objective update that breaks the behavior rule", zap.String("objective", v))
				continue
			}
			dst[i] = v
			changed = append(changed, ChangedCell{Field: field, Index: i})
		}
	}
	apply("target_audience", m.TargetAudience, u.TargetAudience, nil)
	apply("objectives", m.Objectives, u.Objectives, CheckObjective)
	apply("key_messages", m.KeyMessages, u.KeyMessages, nil)
	return changed
}

func cloneMatrix(m Matrix) Matrix {
	pad := func(s []string) []string {
		out := make([]string, 3)
		copy(out, s)
		return out
	}
	return Matrix{
		TargetAudience: pad(m.TargetAudience),
		Objectives:     pad(m.Objectives),
		KeyMessages:    pad(m.KeyMessages),
	}
}
