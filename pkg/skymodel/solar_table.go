package skymodel

// solarSpectrum is the extraterrestrial solar radiance from solarStart in
// steps of solarStep nanometres.
var solarSpectrum = [...]float64{
	9829.41, 10184, 10262.6, 10375.7, 10276, 10179.3, 10156.6, 10750.7,
	11134, 11463.6, 11860.4, 12246.2, 12524.4, 12780, 13187.4, 13632.4,
	13985.9, 13658.3, 13377.4, 13358.3, 13239, 13119.8, 13096.2, 13184,
	13243.5, 13018.4, 12990.4, 13159.1, 13230.8, 13258.6, 13209.9, 13343.2,
	13404.8, 13305.4, 13496.3, 13979.1, 14153.8, 14188.4, 14122.7, 13825.4,
	14033.3, 13914.1, 13837.4, 14117.2, 13982.3, 13864.5, 14118.4, 14545.7,
	15029.3, 15615.3, 15923.5, 16134.8, 16574.5, 16509, 16336.5, 16146.6,
	15965.1, 15798.6, 15899.8, 16125.4, 15854.3, 15986.7, 15739.7, 15319.1,
	15121.5, 15220.2, 15041.2, 14917.7, 14487.8, 14011, 14165.7, 14189.5,
	14540.7, 14797.5, 14641.5, 14761.6, 15153.7, 14791.8, 14907.6, 15667.4,
	16313.5, 16917, 17570.5, 18758.1, 20250.6, 21048.1, 21626.1, 22811.6,
	23577.2, 23982.6, 24062.1, 23917.9, 23914.1, 23923.2, 24052.6, 24228.6,
	24360.8, 24629.6, 24774.8, 24648.3, 24666.5, 24938.6, 24926.3, 24693.1,
	24613.5, 24631.7, 24569.8, 24391.5, 24245.7, 24084.4, 23713.7, 22985.4,
	22766.6, 22818.9, 22834.3, 22737.9, 22791.6, 23086.3, 23377.7, 23461,
	23935.5, 24661.7, 25086.9, 25520.1, 25824.3, 26198, 26350.2, 26375.4,
	26731.2, 27250.4, 27616, 28145.3, 28405.9, 28406.8, 28466.2, 28521.5,
	28783.8, 29025.1, 29082.6, 29081.3, 29043.1, 28918.9, 28871.6, 29049,
	29152.5, 29163.2, 29143.4, 28962.7, 28847.9, 28854, 28808.7, 28624.1,
	28544.2, 28461.4, 28411.1, 28478, 28469.8, 28513.3, 28586.5, 28628.6,
	28751.5, 28948.9, 29051, 29049.6, 29061.7, 28945.7, 28672.8, 28241.5,
	27903.2, 27737, 27590.9, 27505.6, 27270.2, 27076.2, 26929.1, 27018.2,
	27206.8, 27677.2, 27939.9, 27923.9, 27899.2, 27725.4, 27608.4, 27599.4,
	27614.6, 27432.4, 27460.4, 27392.4, 27272, 27299.1, 27266.8, 27386.5,
	27595.9, 27586.9, 27504.8, 27480.6, 27329.8, 26968.4, 26676.3, 26344.7,
	26182.5, 26026.3, 25900.3, 25842.9, 25885.4, 25986.5, 26034.5, 26063.5,
	26216.9, 26511.4, 26672.7, 26828.5, 26901.8, 26861.5, 26865.4, 26774.2,
	26855.8, 27087.1, 27181.3, 27183.1, 27059.8, 26834.9, 26724.3, 26759.6,
	26725.9, 26724.6, 26634.5, 26618.5, 26560.1, 26518.7, 26595.3, 26703.2,
	26712.7, 26733.9, 26744.3, 26764.4, 26753.2, 26692.7, 26682.7, 26588.1,
	26478, 26433.7, 26380.7, 26372.9, 26343.3, 26274.7, 26162.3, 26160.5,
	26210, 26251.2, 26297.9, 26228.9, 26222.3, 26269.7, 26295.6, 26317.9,
	26357.5, 26376.1, 26342.4, 26303.5, 26276.7, 26349.2, 26390, 26371.6,
	26346.7, 26327.6, 26274.2, 26247.3, 26228.7, 26152.1, 25910.3, 25833.2,
	25746.5, 25654.3, 25562, 25458.8, 25438, 25399.1, 25324.3, 25350,
	25514, 25464.9, 25398.5, 25295.2, 25270.2, 25268.4, 25240.6, 25184.9,
	25149.6, 25123.9, 25080.3, 25027.9, 25012.3, 24977.9, 24852.6, 24756.4,
	24663.5, 24483.6, 24398.6, 24362.6, 24325.1, 24341.7, 24288.7, 24284.2,
	24257.3, 24178.8, 24097.6, 24175.6, 24175.7, 24139.7, 24088.1, 23983.2,
	23902.7, 23822.4, 23796.2, 23796.9, 23814.5, 23765.5, 23703, 23642,
	23592.6, 23552, 23514.6, 23473.5, 23431, 23389.3, 23340, 23275.1,
	23187.3, 23069.5, 22967, 22925.3, 22908.9, 22882.5, 22825, 22715.4,
	22535.5, 22267.1, 22029.4, 21941.6, 21919.5, 21878.8, 21825.6, 21766,
	21728.9, 21743.2, 21827.1, 21998.7, 22159.4, 22210, 22187.2, 22127.2,
	22056.2, 22000.2, 21945.9, 21880.2, 21817.1, 21770.3, 21724.3, 21663.2,
	21603.3, 21560.4, 21519.8, 21466.2, 21401.6, 21327.7, 21254.2, 21190.7,
	21133.6, 21079.3, 21024, 20963.7, 20905.5, 20856.6, 20816.6, 20785.2,
	20746.7, 20685.3, 20617.8, 20561.1, 20500.4, 20421.2, 20333.4, 20247,
	20175.3, 20131.4, 20103.2, 20078.5, 20046.8, 19997.2, 19952.9, 19937.2,
	19930.8, 19914.4, 19880.8, 19823, 19753.8, 19685.9, 19615.3, 19537.5,
	19456.8, 19377.6, 19309.4, 19261.9, 19228, 19200.5, 19179.5, 19164.8,
	19153.1, 19140.6, 19129.2, 19120.6, 19104.5, 19070.6, 19023.9, 18969.3,
	18911.4, 18855, 18798.6, 18740.8, 18672.7, 18585.2, 18501, 18442.4,
	18397.5, 18353.9, 18313.2, 18276.8, 18248.3, 18231.2, 18224, 18225.4,
	18220.1, 18192.6, 18155.1, 18119.8, 18081.6, 18035.6, 17987.4, 17942.8,
	17901.7, 17864.2, 17831.1, 17802.9, 17771.5, 17728.6, 17669.7, 17590.1,
	17509.5, 17447.4, 17396,
}
