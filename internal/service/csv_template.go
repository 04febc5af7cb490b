package service

import "strings"

var csvTemplateLines = []string{
	"【生徒データ】セクション",
	"生徒コード,教室,氏名,シメイ,性,高校,学科,学校クラス,部活,志望大学,志望学部",
	"s001,難関大クラス,田中太郎,たなかたろう,男,県立第一高校,理系,3-A,英語部,東京大学,工学部",
	"s002,難関大クラス,鈴木花子,すずきはなこ,女,県立女子高校,文系,3-B,演劇部,京都大学,文学部",
	"",
	"【チェックテスト成績】セクション",
	"氏名,授業回,授業内容,日付,授業内容の理解,初見問題,文法語法,単語,リスニング,合計",
	"田中太郎,1,文法基礎：時制,2026-02-02,18,16,19,17,15,85",
	"田中太郎,2,長文読解：社会評論,2026-02-09,19,18,16,19,17,89",
	"鈴木花子,1,文法基礎：時制,2026-02-02,20,19,20,19,18,96",
	"",
}

// CSVTemplate returns the downloadable import template: UTF-8 with BOM and
// CRLF line endings, in the fixed two-section layout the parser accepts.
func CSVTemplate() []byte {
	return []byte("\ufeff" + strings.Join(csvTemplateLines, "\r\n"))
}
