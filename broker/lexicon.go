package broker

// Lexicon is the ordered branch/city token table used to cut a branch
// qualifier out of a raw broker label. Order matters: when two tokens could
// match at the same position the earlier one wins, so the table must never
// be re-sorted (not even by length).
var Lexicon = []string{
	"台北", "臺北", "新北", "桃園", "台中", "臺中", "台南", "臺南", "高雄", "基隆", "新竹", "嘉義", "台東", "臺東", "花蓮", "宜蘭",
	"內湖", "信義", "松山", "大安", "中山", "中正", "萬華", "文山", "南港", "士林", "北投", "板橋", "三重", "新莊", "永和", "新店", "汐止",
	"中和", "林口", "淡水", "蘆洲", "三峽", "鶯歌", "樹林", "五股", "泰山", "八里", "蘆竹", "龜山", "大園", "平鎮", "中壢", "楊梅", "龍潭",
	"竹北", "竹南", "香山", "湖口", "新豐", "竹東", "頭份", "苗栗", "豐原", "北屯", "西屯", "南屯", "大里", "太平", "霧峰", "大甲", "沙鹿",
	"員林", "彰化", "斗六", "斗南", "虎尾", "太保", "朴子", "新營", "永康", "仁德", "岡山", "楠梓", "左營", "鳳山", "小港", "屏東", "羅東",
	"敦南", "復興", "南京", "忠孝", "松德", "松江", "館前", "西門", "光復", "八德", "重慶", "建國", "文心", "中港", "中華", "民族", "民權", "民生",
}

// suffixes are the corporate unit names stripped from the tail of a label
// after branch truncation.
var suffixes = []string{"分公司", "分行", "營業部", "營業處"}
