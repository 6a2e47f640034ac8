package vm

import (
	"encoding/json"
	"fmt"

	"github.com/dajuguan/PEVM/common"
)

// OpCode enumerates the closed set of micro-op instructions. No further
// opcodes are added at runtime; dispatch is an exhaustive switch.
type OpCode byte

const (
	SLOAD OpCode = iota
	SSTORE
	ADD
	NOOP
)

func (op OpCode) String() string {
	switch op {
	case SLOAD:
		return "SLOAD"
	case SSTORE:
		return "SSTORE"
	case ADD:
		return "ADD"
	case NOOP:
		return "NOOP"
	}
	return fmt.Sprintf("OpCode(%d)", byte(op))
}

// MicroOp is a single instruction of a transaction program. Key is only
// meaningful for SLOAD and SSTORE, Imm only for ADD.
type MicroOp struct {
	Op  OpCode
	Key common.Key
	Imm common.FlatValue
}

func Sload(key common.Key) MicroOp {
	return MicroOp{Op: SLOAD, Key: key}
}

func Sstore(key common.Key) MicroOp {
	return MicroOp{Op: SSTORE, Key: key}
}

func Add(imm common.FlatValue) MicroOp {
	return MicroOp{Op: ADD, Imm: imm}
}

func Noop() MicroOp {
	return MicroOp{Op: NOOP}
}

// The wire form of micro-ops is externally tagged: keyed ops encode as
// {"SLOAD":{"key":…}} or {"SSTORE":{"key":…}}, ADD as {"ADD":{"imm":…}},
// and NOOP as the bare string "NOOP".

type keyedOpJson struct {
	Key common.Key `json:"key"`
}

type addOpJson struct {
	Imm common.FlatValue `json:"imm"`
}

func (op MicroOp) MarshalJSON() ([]byte, error) {
	switch op.Op {
	case SLOAD:
		return json.Marshal(map[string]keyedOpJson{"SLOAD": {Key: op.Key}})
	case SSTORE:
		return json.Marshal(map[string]keyedOpJson{"SSTORE": {Key: op.Key}})
	case ADD:
		return json.Marshal(map[string]addOpJson{"ADD": {Imm: op.Imm}})
	case NOOP:
		return json.Marshal(NOOP.String())
	}
	return nil, fmt.Errorf("unknown opcode: %d", byte(op.Op))
}

func (op *MicroOp) UnmarshalJSON(data []byte) error {
	var tag string
	if err := json.Unmarshal(data, &tag); err == nil {
		if tag != NOOP.String() {
			return fmt.Errorf("unknown micro-op %q", tag)
		}
		*op = Noop()
		return nil
	}
	var variants struct {
		Sload  *keyedOpJson `json:"SLOAD"`
		Sstore *keyedOpJson `json:"SSTORE"`
		Add    *addOpJson   `json:"ADD"`
	}
	if err := json.Unmarshal(data, &variants); err != nil {
		return err
	}
	switch {
	case variants.Sload != nil:
		*op = Sload(variants.Sload.Key)
	case variants.Sstore != nil:
		*op = Sstore(variants.Sstore.Key)
	case variants.Add != nil:
		*op = Add(variants.Add.Imm)
	default:
		return fmt.Errorf("unknown micro-op: %s", data)
	}
	return nil
}
