package service

import (
	"fmt"

	"family_hub_backend/internal/util"
)

// MathProblem 单道口算题
type MathProblem struct {
	Type     string `json:"type"`
	A        int    `json:"a"`
	B        int    `json:"b"`
	Question string `json:"question"`
}

// DailyProblems 某孩子某天的题目集合，同一 (date, kidKey) 永远生成相同题目
type DailyProblems struct {
	Addition    MathProblem `json:"addition"`
	Subtraction MathProblem `json:"subtraction"`
}

// hashSeed 把日期和孩子标识直接拼接后压成 32 位种子。
// 乘加散列在 uint32 上回绕，结果按有符号解释后取绝对值。
func hashSeed(s string) uint32 {
	var h uint32
	for _, c := range []byte(s) {
		h = h*31 + uint32(c)
	}
	if int32(h) < 0 {
		// -MinInt32 超出 int32 范围，经 int64 取负再回到 uint32
		return uint32(-int64(int32(h)))
	}
	return h
}

// mulberry32 确定性伪随机序列，返回 [0,1) 的 float64
type mulberry32 struct {
	state uint32
}

func (m *mulberry32) next() float64 {
	m.state += 0x6D2B79F5
	t := m.state
	t = (t ^ (t >> 15)) * (t | 1)
	t ^= t + (t^(t>>7))*(t|61)
	return float64(t^(t>>14)) / 4294967296.0
}

// GenerateDailyProblems 生成当天题目。加法：a∈[1,98]，b∈[1,99-a]，和不超过 99；
// 减法：a∈[2,100]，b∈[1,a-1]，差恒为正。抽取顺序固定，改动即破坏历史可复现性。
func GenerateDailyProblems(date, kidKey string) DailyProblems {
	rng := &mulberry32{state: hashSeed(date + kidKey)}

	addA := int(rng.next()*98) + 1
	addB := int(rng.next()*float64(99-addA)) + 1
	subA := int(rng.next()*99) + 2
	subB := int(rng.next()*float64(subA-1)) + 1

	return DailyProblems{
		Addition: MathProblem{
			Type:     "addition",
			A:        addA,
			B:        addB,
			Question: fmt.Sprintf("%d + %d", addA, addB),
		},
		Subtraction: MathProblem{
			Type:     "subtraction",
			A:        subA,
			B:        subB,
			Question: fmt.Sprintf("%d - %d", subA, subB),
		},
	}
}

// ExpectedAnswer 服务端重算标准答案，客户端给的答案永远不可信
func ExpectedAnswer(problems DailyProblems, questionType string) (int, error) {
	switch questionType {
	case "addition":
		return problems.Addition.A + problems.Addition.B, nil
	case "subtraction":
		return problems.Subtraction.A - problems.Subtraction.B, nil
	case "multiplication", "division":
		return 0, util.ErrQuestionTypeNotSupported
	default:
		return 0, util.ErrInvalidQuestionType
	}
}
