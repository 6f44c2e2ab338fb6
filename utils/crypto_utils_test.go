package utils

import (
	"reflect"
	"testing"
)

func TestCalculateMD5(t *testing.T) {
	// 已知向量
	if got := CalculateMD5("hello"); got != "5d41402abc4b2a76b9719d911017c592" {
		t.Errorf("Unexpected MD5 for 'hello': %s", got)
	}
	if got := CalculateMD5(""); got != "d41d8cd98f00b204e9800998ecf8427e" {
		t.Errorf("Unexpected MD5 for empty string: %s", got)
	}
}

func TestGenerateUserID(t *testing.T) {
	id := GenerateUserID("2026-01-02T15:04:05.000000000+08:003525.00中")
	if len(id) != UserIDLength {
		t.Errorf("Expected %d-char id, got %d", UserIDLength, len(id))
	}
	if id != CalculateMD5("2026-01-02T15:04:05.000000000+08:003525.00中")[:UserIDLength] {
		t.Error("Expected id to be the MD5 prefix of the input")
	}
	if GenerateUserID("a") == GenerateUserID("b") {
		t.Error("Different inputs must not collide on the prefix for trivial cases")
	}
}

func TestDeduplicateSlice(t *testing.T) {
	input := []string{"养老", " 年金 ", "养老", "", "年金", "稳健"}
	expected := []string{"养老", "年金", "稳健"}

	if got := DeduplicateSlice(input); !reflect.DeepEqual(got, expected) {
		t.Errorf("Expected %v, got %v", expected, got)
	}
}

func TestContainsIgnoreCase(t *testing.T) {
	if !ContainsIgnoreCase("PingAn养老年金", "pingan") {
		t.Error("Expected case-insensitive match")
	}
	if ContainsIgnoreCase("养老年金", "寿险") {
		t.Error("Unexpected match")
	}
}
