package csvio

import (
	"strings"
	"testing"
	"time"
)

func TestEscapeUnescapeRoundTrip(t *testing.T) {
	cases := []string{
		"",
		"plain",
		"with,comma",
		`with"quote`,
		`"quoted"`,
		"line1\nline2",
		`a,"b",c` + "\n" + `d`,
		`""`,
	}
	for _, s := range cases {
		if got := Unescape(Escape(s)); got != s {
			t.Fatalf("round trip %q: got %q", s, got)
		}
	}
}

func TestEscapeOnlyWhenNeeded(t *testing.T) {
	if got := Escape("plain text"); got != "plain text" {
		t.Fatalf("plain field should be verbatim, got %q", got)
	}
	if got := Escape("a,b"); got != `"a,b"` {
		t.Fatalf("comma field: got %q", got)
	}
	if got := Escape(`say "hi"`); got != `"say ""hi"""` {
		t.Fatalf("quote field: got %q", got)
	}
}

func TestDecodeRejectsBadHeader(t *testing.T) {
	_, err := Decode("ID,CreateDate,Company\n1,2024-01-01,Acme")
	if err == nil {
		t.Fatal("expected header error")
	}
}

func TestDecodeHeaderOrderIndependent(t *testing.T) {
	text := "Company,ID,Status,Link,JobPosition,CreateDate\nAcme,7,Interview,https://acme.test,Engineer,2024-05-01T00:00:00Z"
	res, err := Decode(text)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(res.Rows) != 1 {
		t.Fatalf("expected 1 row, got %d", len(res.Rows))
	}
	r := res.Rows[0]
	if r.ID != "7" || r.Company != "Acme" || r.JobPosition != "Engineer" || r.Status != "Interview" {
		t.Fatalf("columns misassigned: %+v", r)
	}
}

func TestDecodeSkipsInvalidRows(t *testing.T) {
	text := strings.Join([]string{
		"ID,CreateDate,Company,JobPosition,Link,Status",
		"1,2024-01-01T00:00:00Z,Acme,Engineer,https://acme.test,Interview",
		"2,2024-01-02T00:00:00Z,Globex,Analyst", // wrong field count
		"3,2024-01-03T00:00:00Z,,Engineer,https://x.test,Rejected", // empty company
		"4,2024-01-04T00:00:00Z,Initech,,https://y.test,Success",   // empty position
		"",
		"5,2024-01-05T00:00:00Z,Hooli,Designer,https://z.test,Sent Request",
	}, "\n")

	res, err := Decode(text)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(res.Rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(res.Rows))
	}
	if len(res.Skipped) != 3 {
		t.Fatalf("expected 3 skipped, got %d: %+v", len(res.Skipped), res.Skipped)
	}
	if res.Rows[0].Company != "Acme" || res.Rows[1].Company != "Hooli" {
		t.Fatalf("unexpected rows: %+v", res.Rows)
	}
}

func TestDecodeQuotedFields(t *testing.T) {
	text := "ID,CreateDate,Company,JobPosition,Link,Status\n" +
		`1,2024-01-01T00:00:00Z,"Acme, Inc.","Engineer ""Backend""",https://acme.test,Interview`
	res, err := Decode(text)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(res.Rows) != 1 {
		t.Fatalf("expected 1 row, got %d", len(res.Rows))
	}
	if res.Rows[0].Company != "Acme, Inc." {
		t.Fatalf("comma field: got %q", res.Rows[0].Company)
	}
	if res.Rows[0].JobPosition != `Engineer "Backend"` {
		t.Fatalf("quote field: got %q", res.Rows[0].JobPosition)
	}
}

func TestDecodeMultilineQuotedField(t *testing.T) {
	text := "ID,CreateDate,Company,JobPosition,Link,Status\n" +
		"1,2024-01-01T00:00:00Z,\"Acme\nEurope\",Engineer,https://acme.test,Interview"
	res, err := Decode(text)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(res.Rows) != 1 {
		t.Fatalf("expected 1 row, got %d", len(res.Rows))
	}
	if res.Rows[0].Company != "Acme\nEurope" {
		t.Fatalf("multiline field: got %q", res.Rows[0].Company)
	}
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	rows := []Row{
		{ID: "1", CreateDate: "2024-01-01T00:00:00Z", Company: "Acme, Inc.", JobPosition: `Engineer "Backend"`, Link: "https://acme.test/a,b", Status: "Interview"},
		{ID: "2", CreateDate: "2024-02-01T00:00:00Z", Company: "Globex\nEurope", JobPosition: "Analyst", Link: "https://globex.test", Status: "Sent Request"},
	}

	res, err := Decode(Encode(rows))
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(res.Skipped) != 0 {
		t.Fatalf("unexpected skips: %+v", res.Skipped)
	}
	if len(res.Rows) != len(rows) {
		t.Fatalf("expected %d rows, got %d", len(rows), len(res.Rows))
	}
	for i := range rows {
		if res.Rows[i] != rows[i] {
			t.Fatalf("row %d mismatch:\nwant %+v\ngot  %+v", i, rows[i], res.Rows[i])
		}
	}

	// A second pass over re-encoded rows must be byte-identical.
	if again := Encode(res.Rows); again != Encode(rows) {
		t.Fatal("re-encode is not stable")
	}
}

func TestDecodeCRLF(t *testing.T) {
	text := "ID,CreateDate,Company,JobPosition,Link,Status\r\n1,2024-01-01T00:00:00Z,Acme,Engineer,https://acme.test,Interview\r\n"
	res, err := Decode(text)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(res.Rows) != 1 || res.Rows[0].Status != "Interview" {
		t.Fatalf("unexpected rows: %+v", res.Rows)
	}
}

func TestExportFilename(t *testing.T) {
	at := time.Date(2024, 3, 9, 15, 4, 5, 0, time.UTC)
	if got := ExportFilename(at); got != "job_search_2024-03-09.csv" {
		t.Fatalf("got %q", got)
	}
}
