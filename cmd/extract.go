package cmd

import (
	"encoding/json"
	"fmt"
	"interview_prep_backend/internal/extract"
	"interview_prep_backend/internal/model"
	"interview_prep_backend/internal/util"
	"io"
	"os"

	"github.com/spf13/cobra"
)

var (
	extractKind string
	extractFile string
)

// extract 对保存下来的模型输出离线运行提取和校验，便于排查线上 422
var extractCmd = &cobra.Command{
	Use:   "extract",
	Short: "解析一段模型输出并打印结构化结果",
	RunE: func(cmd *cobra.Command, args []string) error {
		kind, err := model.ParseOperationKind(extractKind)
		if err != nil {
			return err
		}

		var in io.Reader = cmd.InOrStdin()
		if extractFile != "" && extractFile != "-" {
			f, err := os.Open(extractFile)
			if err != nil {
				return err
			}
			defer f.Close()
			in = f
		}

		raw, err := io.ReadAll(in)
		if err != nil {
			return err
		}

		result, err := interpret(kind, string(raw))
		if err != nil {
			return fmt.Errorf("%s: %w", util.ErrorKind(err), err)
		}

		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(result)
	},
}

func interpret(kind model.OperationKind, text string) (interface{}, error) {
	switch kind {
	case model.OpSubtopics, model.OpRefinement, model.OpCategorization:
		return extract.ExtractAndValidate(kind, text)
	case model.OpGrading:
		return map[string]interface{}{"score": extract.Score(text)}, nil
	case model.OpQuestions:
		return map[string]interface{}{"items": extract.QuestionItems(text)}, nil
	default:
		return map[string]interface{}{"text": text}, nil
	}
}

func init() {
	extractCmd.Flags().StringVar(&extractKind, "kind", "", "操作类型: subtopics|validation|refinement|categorization|questions|grading")
	extractCmd.Flags().StringVar(&extractFile, "file", "", "模型输出文件，缺省读取标准输入")
	_ = extractCmd.MarkFlagRequired("kind")
}
