package fixes

import "stormlightlabs.org/hockey/internal/core"

// apiEventFixes patches the gamecenter JSON feed, keyed by game ID and the
// event's sortOrder index. Most entries restore a drawn-by reference the
// feed dropped from a penalty.
//
// Known errors with no fix:
//
//	2021020562 | CHL at 2898 game seconds is not in the API feed
//	2021020767 | CHL at 3598 game seconds is not in the API feed
//	2021020882 | SHOT at 249, 1785, & 1786 game seconds are not in the API feed
//	2021020894 | SHOT by Boldy at 3507 game seconds is not in the API feed
var apiEventFixes = map[core.GameID]map[int]EventFix{
	2010021176: {213: setDrawnBy("8467396")},
	2011020069: {660: func(e *core.Event) { e.Player1.APIID = "8473473" }},
	2012020095: {139: setDrawnBy("8468483")},
	2012020341: {656: func(e *core.Event) {
		e.Player1.Name = core.SentinelBench
		e.Player1.APIID = core.SentinelBench
		e.Player1.EHID = core.SentinelBench
	}},
	2012020627: {621: setDrawnBy("8462129")},
	2012020660: {377: func(e *core.Event) {
		e.Player1.Name = core.SentinelBench
		e.Player1.APIID = core.SentinelBench
		e.Player1.EHID = core.SentinelBench
	}},
	2012020671: {680: func(e *core.Event) {
		e.Player2.APIID = "8470192"
		e.Player2.Role = core.RoleServedBy
	}},
	2012030224: {594: setDrawnBy("8475184")},
	2013020305: {392: setDrawnBy("8475184")},
	2013030142: {727: setDrawnBy("8470601")},
	2013030155: {309: setDrawnBy("8476463")},
	2014020120: {
		661: setDrawnBy("8476854"),
		720: func(e *core.Event) {
			if e.Player1.APIID == "8473492" {
				return
			}
			e.Player3.APIID = e.Player1.APIID
			e.Player3.Role = core.RoleServedBy
			e.Player1.APIID = "8473492"
		},
	},
	2014020356: {
		599: setClock(970, 3370),
		603: setClock(1002, 3402),
	},
	2014020417: {280: setDrawnBy("8468501")},
	2014020506: {
		377: setDrawnBy("8468208"),
		584: setDrawnBy("8474613"),
	},
	2014020939: {287: setDrawnBy("8475218")},
	2014020945: {585: setClock(1069, 3469)},
	2014021127: {
		754: setClock(1124, 3524),
		756: setClock(1125, 3525),
		755: setClock(1127, 3527),
	},
	2014021128: {280: setDrawnBy("8471426")},
	2014021203: {344: setDrawnBy("8466378")},
	2014030311: {346: setDrawnBy("8474613")},
	2014030315: {69: setDrawnBy("8474151")},
	2015020193: {389: func(e *core.Event) { e.Player1.APIID = "8475760" }},
	2015020401: {167: setDrawnBy("8470854")},
	2015020839: {417: setDrawnBy("8476393")},
	2015020917: {162: clearPlayer3},
	2015021092: {199: setDrawnBy("8474884")},
	2016020049: {347: setDrawnBy("8475692")},
	2016020177: {494: setClock(360, 2760)},
	2016020256: {210: clearPlayer3},
	2016020326: {175: setDrawnBy("8475855")},
	2016020433: {
		366: setDrawnBy("8471686"),
		364: clearPlayer3,
	},
	2016020519: {335: setDrawnBy("8471676")},
	2016020625: {630: benchPenalty},
	2016020883: {385: setDrawnBy("8469521")},
	2016020963: {44: setClock(40, 40)},
	2016021111: {183: setDrawnBy("8473504")},
	2016030216: {567: setDrawnBy("8474151")},
	2017020033: {
		390: setDrawnBy("8477964"),
		585: setDrawnBy("8476892"),
	},
	2017020096: {727: setDrawnBy("8474066")},
	2017020209: {245: func(e *core.Event) {
		e.Player1.Name = core.SentinelBench
		e.Player1.APIID = core.SentinelBench
		e.Player1.EHID = core.SentinelBench
	}},
	2017020233: {375: setDrawnBy("8470638")},
	2017020548: {726: setDrawnBy("8468493")},
	2017020601: {319: setDrawnBy("8473449")},
	2017020615: {626: setDrawnBy("8473546")},
	2017020796: {687: benchPenalty},
	2017020835: {560: setDrawnBy("8477215")},
	2017020836: {273: setDrawnBy("8476346")},
	2017021136: {
		193: setDrawnBy("8479206"),
		262: setDrawnBy("8475314"),
	},
	2017021161: {
		253: benchPenaltyServed,
		590: benchPenalty,
	},
	2018020006: {683: setDrawnBy("8475793")},
	2018020009: {421: benchPenalty},
	2018020049: {155: setDrawnBy("8479353")},
	2018020115: {248: setDrawnBy("8475692")},
	2018020122: {235: setDrawnBy("8477996")},
	2018020153: {212: setDrawnBy("8478458")},
	2018020211: {661: setDrawnBy("8471217")},
	2018020309: {76: setDrawnBy("8476918")},
	2018020363: {299: benchPenalty},
	2018020519: {417: setDrawnBy("8477941")},
	2018020561: {500: setDrawnBy("8474190")},
	2018020752: {41: setDrawnBy("8476917")},
	2018020794: {182: setDrawnBy("8470187")},
	2018020795: {354: setDrawnBy("8476918")},
	2018020841: {227: setDrawnBy("8476455")},
	2018020969: {575: setDrawnBy("8474150")},
	2018021087: {550: benchPenalty},
	2018021124: {237: setDrawnBy("8479353")},
	2018021171: {551: setDrawnBy("8471887")},
	2019020006: {288: setDrawnBy("8478550")},
	2019020136: {424: setDrawnBy("8478550")},
	2019020147: {28: setDrawnBy("8478550")},
	2019020179: {573: benchPenaltyServed},
	2019020239: {543: setDrawnBy("8478463")},
	2019020316: {428: func(e *core.Event) {
		if e.Player2.APIID == "8477903" {
			return
		}
		e.Player3.APIID = e.Player2.APIID
		e.Player3.Role = core.RoleServedBy
		e.Player2.APIID = "8477903"
		e.Player2.Role = core.RoleDrawnBy
	}},
	2019020682: {382: setDrawnBy("8478550")},
	2020020456: {360: setClock(1068, 2268)},
	2020020846: {
		407: func(e *core.Event) { e.Player2.APIID = "8475799" },
		409: func(e *core.Event) { e.Player2.APIID = "8479987" },
		411: func(e *core.Event) { e.Player2.APIID = "8479987" },
		413: func(e *core.Event) { e.Player2.APIID = "8475790" },
		415: func(e *core.Event) { e.Player2.APIID = "8476988" },
	},
	2020020860: {705: setClock(270, 3870)},
	2021020482: {250: func(e *core.Event) { e.Player1.APIID = "8477465" }},
}
