package catalog

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestParseItems_PreservesRowOrderAndCount(t *testing.T) {
	t.Parallel()

	text := "name,description,imageUrl\n" +
		"Panel,Steel fence panel,https://img/1.jpg\n" +
		"Base,Concrete base,https://img/2.jpg\n" +
		"Clamp,Panel clamp,https://img/3.jpg\n"

	items, warnings, err := ParseItems(text)
	if err != nil {
		t.Fatalf("parse items: %v", err)
	}
	if len(warnings) != 0 {
		t.Fatalf("expected no warnings, got %v", warnings)
	}

	got := make([]string, 0, len(items))
	for _, item := range items {
		got = append(got, item.Name())
	}
	if diff := cmp.Diff([]string{"Panel", "Base", "Clamp"}, got); diff != "" {
		t.Fatalf("unexpected item order (-want +got):\n%s", diff)
	}
}

func TestParseItems_NormalizesHeaders(t *testing.T) {
	t.Parallel()

	items, _, err := ParseItems("  Name ,Description,IMAGEURL\nWidget,A widget,https://img/w.png\n")
	if err != nil {
		t.Fatalf("parse items: %v", err)
	}
	if len(items) != 1 {
		t.Fatalf("expected 1 item, got %d", len(items))
	}
	if items[0]["name"] != "Widget" {
		t.Fatalf("expected name=Widget, got %#v", items[0])
	}
	if items[0].ImageURL() != "https://img/w.png" {
		t.Fatalf("unexpected image url: %q", items[0].ImageURL())
	}
}

func TestParseItems_HandlesQuotedCommasAndNewlines(t *testing.T) {
	t.Parallel()

	text := "name,description,imageurl,features\n" +
		"\"Generator, 20kW\",\"Line one\nLine two\",https://img/g.jpg,\"quiet, diesel\"\n"

	items, _, err := ParseItems(text)
	if err != nil {
		t.Fatalf("parse items: %v", err)
	}
	if len(items) != 1 {
		t.Fatalf("expected 1 item, got %d", len(items))
	}
	want := Item{
		"name":        "Generator, 20kW",
		"description": "Line one\nLine two",
		"imageurl":    "https://img/g.jpg",
		"features":    "quiet, diesel",
	}
	if diff := cmp.Diff(want, items[0]); diff != "" {
		t.Fatalf("unexpected item (-want +got):\n%s", diff)
	}
}

func TestParseItems_SkipsEmptyLinesAndBlankRows(t *testing.T) {
	t.Parallel()

	text := "name,description,imageurl\n\nA,a,x\n,,\n   ,  ,\nB,b,y\n\n"

	items, _, err := ParseItems(text)
	if err != nil {
		t.Fatalf("parse items: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("expected 2 items, got %d: %v", len(items), items)
	}
}

func TestParseItems_WarnsOnMissingRequiredFieldsButKeepsRow(t *testing.T) {
	t.Parallel()

	text := "name,description,imageurl,price\n" +
		"Complete,Has all,https://img/a.jpg,10\n" +
		",No name,  ,20\n"

	items, warnings, err := ParseItems(text)
	if err != nil {
		t.Fatalf("parse items: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("expected both rows kept, got %d", len(items))
	}
	if items[1].Get("price") != "20" {
		t.Fatalf("expected incomplete row kept as-is, got %#v", items[1])
	}

	want := []Warning{{Row: 3, Missing: []string{"name", "imageurl"}}}
	if diff := cmp.Diff(want, warnings); diff != "" {
		t.Fatalf("unexpected warnings (-want +got):\n%s", diff)
	}
	if !strings.Contains(warnings[0].String(), "row 3") {
		t.Fatalf("unexpected warning text: %s", warnings[0].String())
	}
}

func TestParseItems_TrimsCategoryAndKeepsUnknownFields(t *testing.T) {
	t.Parallel()

	text := "name,description,imageurl,category,Warehouse Code\n" +
		"A,a,x,  Fencing  ,  WH-1 \n"

	items, _, err := ParseItems(text)
	if err != nil {
		t.Fatalf("parse items: %v", err)
	}
	if items[0]["category"] != "Fencing" {
		t.Fatalf("expected trimmed category, got %q", items[0]["category"])
	}
	if items[0]["warehouse code"] != "  WH-1 " {
		t.Fatalf("expected unknown field preserved as-is, got %q", items[0]["warehouse code"])
	}
	if diff := cmp.Diff([]string{"warehouse code"}, items[0].ExtraFields()); diff != "" {
		t.Fatalf("unexpected extra fields (-want +got):\n%s", diff)
	}
}

func TestParseItems_ShortRowsFillMissingColumns(t *testing.T) {
	t.Parallel()

	items, warnings, err := ParseItems("name,description,imageurl\nOnly name\n")
	if err != nil {
		t.Fatalf("parse items: %v", err)
	}
	if len(items) != 1 || items[0]["imageurl"] != "" {
		t.Fatalf("unexpected items: %#v", items)
	}
	if len(warnings) != 1 {
		t.Fatalf("expected one warning, got %v", warnings)
	}
}

func TestParseItems_StripsByteOrderMark(t *testing.T) {
	t.Parallel()

	items, _, err := ParseItems("\ufeffName,description,imageurl\nA,a,x\n")
	if err != nil {
		t.Fatalf("parse items: %v", err)
	}
	if items[0].Name() != "A" {
		t.Fatalf("expected BOM stripped from first header, got %#v", items[0])
	}
}

func TestParse_DuplicateHeadersFail(t *testing.T) {
	t.Parallel()

	_, err := Parse("Name, name ,description\nA,B,c\n", ModeItems)
	var parseErr *ParseError
	if !errors.As(err, &parseErr) {
		t.Fatalf("expected ParseError, got %v", err)
	}
	if !strings.Contains(err.Error(), `"name"`) {
		t.Fatalf("expected duplicate key in error, got %v", err)
	}
}

func TestParse_EmptyHeaderColumnsAreDropped(t *testing.T) {
	t.Parallel()

	items, _, err := ParseItems("name,,description,,imageurl\nA,junk,a,more,x\n")
	if err != nil {
		t.Fatalf("parse items: %v", err)
	}
	want := Item{"name": "A", "description": "a", "imageurl": "x"}
	if diff := cmp.Diff(want, items[0]); diff != "" {
		t.Fatalf("unexpected item (-want +got):\n%s", diff)
	}
}

func TestParse_EmptyTextIsParseError(t *testing.T) {
	t.Parallel()

	_, err := Parse("", ModeItems)
	var parseErr *ParseError
	if !errors.As(err, &parseErr) {
		t.Fatalf("expected ParseError, got %v", err)
	}
}

func TestParse_MalformedQuotingIsParseError(t *testing.T) {
	t.Parallel()

	_, err := Parse("name,description\n\"open,quote\n", ModeItems)
	var parseErr *ParseError
	if !errors.As(err, &parseErr) {
		t.Fatalf("expected ParseError, got %v", err)
	}
}

func TestParse_IsDeterministic(t *testing.T) {
	t.Parallel()

	text := "name,description,imageurl\nA,a,x\n,b,\nC,c,z\n"
	first, err := Parse(text, ModeItems)
	if err != nil {
		t.Fatalf("first parse: %v", err)
	}
	second, err := Parse(text, ModeItems)
	if err != nil {
		t.Fatalf("second parse: %v", err)
	}
	if diff := cmp.Diff(first, second); diff != "" {
		t.Fatalf("parse results differ (-first +second):\n%s", diff)
	}
}

func TestParseCategory_ZeroRowsIsNotFound(t *testing.T) {
	t.Parallel()

	_, err := ParseCategory("title,description,contactCta,showPrices\n\n")
	var notFound *NotFoundError
	if !errors.As(err, &notFound) {
		t.Fatalf("expected NotFoundError, got %v", err)
	}
}

func TestParseCategory_ReturnsFirstRowOnly(t *testing.T) {
	t.Parallel()

	text := "Title,Description,ContactCta,ShowPrices\n" +
		"Temporary Fencing,Secure your site,Request a quote today,true\n" +
		"Other,Ignored,Ignored,false\n"

	got, err := ParseCategory(text)
	if err != nil {
		t.Fatalf("parse category: %v", err)
	}
	want := CategoryInfo{
		Title:       "Temporary Fencing",
		Description: "Secure your site",
		ContactCTA:  "Request a quote today",
		ShowPrices:  true,
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("unexpected category (-want +got):\n%s", diff)
	}
}

func TestFindCategory_MatchesServiceType(t *testing.T) {
	t.Parallel()

	text := "serviceType,title,description,contactCta,showPrices\n" +
		"generators,Generators,Power,Call us,false\n" +
		" Fencing ,Temporary Fencing,Secure,Quote,true\n"

	got, err := FindCategory(text, "fencing")
	if err != nil {
		t.Fatalf("find category: %v", err)
	}
	if got.Title != "Temporary Fencing" || !got.ShowPrices || got.ServiceType != "Fencing" {
		t.Fatalf("unexpected category: %+v", got)
	}
}

func TestFindCategory_NoMatchIsNotFound(t *testing.T) {
	t.Parallel()

	_, err := FindCategory("serviceType,title\nparts,Parts\n", "fencing")
	var notFound *NotFoundError
	if !errors.As(err, &notFound) {
		t.Fatalf("expected NotFoundError, got %v", err)
	}
	if notFound.ServiceType != "fencing" {
		t.Fatalf("unexpected service type in error: %q", notFound.ServiceType)
	}
}

func TestFindCategory_WithoutServiceTypeColumnUsesFirstRow(t *testing.T) {
	t.Parallel()

	got, err := FindCategory("title,showPrices\nUsed Equipment,true\nSecond,false\n", "used")
	if err != nil {
		t.Fatalf("find category: %v", err)
	}
	if got.Title != "Used Equipment" || !got.ShowPrices {
		t.Fatalf("unexpected category: %+v", got)
	}
}
